package cmd

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/optindex/internal/selection"
	"github.com/Aman-CERP/optindex/internal/ui"
)

// colorsCatalog is the catalog picked in multi-select mode.
const colorsCatalog = "colors"

type pickOptions struct {
	catalog string
	format  string
	plain   bool
}

type pickOutput struct {
	Catalog   string   `json:"catalog"`
	ID        string   `json:"id,omitempty"`
	Label     string   `json:"label,omitempty"`
	Colors    []string `json:"colors,omitempty"`
	Cancelled bool     `json:"cancelled"`
}

func newPickCmd() *cobra.Command {
	var opts pickOptions

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick an option from a catalog interactively",
		Long: `Open the picker sheet for a catalog: type to filter, press tab then a
letter to jump to its section, enter to choose and esc to cancel.

The colors catalog is multi-select: enter toggles a colour and esc
finishes. When stdin or stdout is not a terminal a line-driven picker is
used instead.`,
		Example: `  optindex pick --catalog brands
  optindex pick --catalog colors
  printf 'ad\n1\n' | optindex pick --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPick(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.catalog, "catalog", "c", "", "Catalog name (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text, json")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Use the line-driven picker even on a terminal")

	return cmd
}

func runPick(cmd *cobra.Command, opts pickOptions) error {
	cfg, reg, err := loadEnv()
	if err != nil {
		return err
	}
	format, err := resolveFormat(opts.format, cfg)
	if err != nil {
		return err
	}
	cat, err := reg.Get(catalogName(opts.catalog, cfg))
	if err != nil {
		return err
	}

	uiOpts := []ui.ConfigOption{
		ui.WithTitle(cat.Title),
		ui.WithAlphabet(cfg.Picker.Alphabet),
		ui.WithPageHeight(cfg.Picker.PageHeight),
		ui.WithForcePlain(opts.plain),
		ui.WithNoColor(cfg.Output.NoColor || ui.DetectNoColor()),
	}
	if cat.Name == colorsCatalog {
		set, err := selection.NewColorSet(cfg.Picker.MaxColors, cfg.Picker.ExclusiveColor)
		if err != nil {
			return err
		}
		uiOpts = append(uiOpts, ui.WithColors(set))
	}

	picker := ui.NewPicker(ui.NewConfig(cmd.InOrStdin(), cmd.OutOrStdout(), cat.Options, uiOpts...))
	choice, err := picker.Pick(cmd.Context())
	if err != nil {
		return err
	}
	slog.Debug("pick_complete",
		slog.String("catalog", cat.Name),
		slog.Bool("cancelled", choice.Cancelled),
		slog.String("id", choice.Option.ID))

	out := newWriter(cmd, cfg)
	if format == "json" {
		return out.JSON(pickOutput{
			Catalog:   cat.Name,
			ID:        choice.Option.ID,
			Label:     choice.Option.Label,
			Colors:    choice.Colors,
			Cancelled: choice.Cancelled,
		})
	}

	switch {
	case choice.Cancelled:
		out.Warning("Nothing picked")
	case cat.Name == colorsCatalog:
		if len(choice.Colors) == 0 {
			out.Warning("No colours selected")
		} else {
			out.Successf("Colours: %s", strings.Join(choice.Colors, ", "))
		}
	default:
		out.Successf("Picked %s (%s)", choice.Option.Label, choice.Option.ID)
	}
	return nil
}
