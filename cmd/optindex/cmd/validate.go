package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/optindex/internal/listing"
)

type validateOutput struct {
	Valid  bool                 `json:"valid"`
	Errors []listing.FieldError `json:"errors"`
}

func newValidateCmd() *cobra.Command {
	var format string
	var offline bool

	cmd := &cobra.Command{
		Use:   "validate <draft.yaml>",
		Short: "Validate a listing draft",
		Long: `Validate a listing draft the way the sell form does: images, name,
description, category, brand, condition, size and a positive price are
required.

Brand, condition, size, category and colours are also checked against
the catalogs unless --offline is given.`,
		Example: `  optindex validate draft.yaml
  optindex validate draft.yaml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reg, err := loadEnv()
			if err != nil {
				return err
			}
			f, err := resolveFormat(format, cfg)
			if err != nil {
				return err
			}

			draft, err := listing.Load(args[0])
			if err != nil {
				return err
			}

			var errs []listing.FieldError
			if offline {
				errs = draft.Validate()
			} else {
				errs, err = draft.ValidateAgainst(reg, listing.Rules{
					MaxColors:      cfg.Picker.MaxColors,
					ExclusiveColor: cfg.Picker.ExclusiveColor,
				})
				if err != nil {
					return err
				}
			}

			out := newWriter(cmd, cfg)
			if f == "json" {
				if errs == nil {
					errs = []listing.FieldError{}
				}
				if err := out.JSON(validateOutput{Valid: len(errs) == 0, Errors: errs}); err != nil {
					return err
				}
				return listing.AsError(errs)
			}

			if len(errs) == 0 {
				out.Success("Draft is valid")
				return nil
			}
			for _, e := range errs {
				out.Error(e.String())
			}
			return listing.AsError(errs)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json")
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip catalog lookups")

	return cmd
}
