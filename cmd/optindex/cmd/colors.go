package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/Aman-CERP/optindex/internal/errors"
	"github.com/Aman-CERP/optindex/internal/selection"
)

func newColorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colors",
		Short: "Work with the bounded colour selection",
	}
	cmd.AddCommand(newColorsToggleCmd())
	return cmd
}

func newColorsToggleCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "toggle <colour>...",
		Short: "Apply colour taps in order and print the selection",
		Long: `Apply each colour as a tap on the colour picker, in order, and print
the selection after every tap.

Tapping a selected colour removes it. When the selection is full the
oldest colour is dropped. The exclusive colour (Multicolor by default)
replaces everything, and any other colour replaces it.`,
		Example: `  optindex colors toggle Red Blue Green
  optindex colors toggle Red multicolor Navy --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reg, err := loadEnv()
			if err != nil {
				return err
			}
			f, err := resolveFormat(format, cfg)
			if err != nil {
				return err
			}
			colors, err := reg.Get(colorsCatalog)
			if err != nil {
				return err
			}
			set, err := selection.NewColorSet(cfg.Picker.MaxColors, cfg.Picker.ExclusiveColor)
			if err != nil {
				return err
			}

			out := newWriter(cmd, cfg)
			for _, arg := range args {
				opt, ok := colors.Lookup(arg)
				if !ok {
					return apperrors.New(apperrors.ErrCodeSelectionInvalid,
						fmt.Sprintf("%q is not a known colour", arg), nil).
						WithSuggestion("Run 'optindex group --catalog colors' to list colours")
				}
				values := set.Toggle(opt.Label)
				if f == "text" {
					out.Statusf("·", "%s → [%s]", opt.Label, strings.Join(values, ", "))
				}
			}

			if f == "json" {
				return out.JSON(map[string][]string{"colors": set.Values()})
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json")

	return cmd
}
