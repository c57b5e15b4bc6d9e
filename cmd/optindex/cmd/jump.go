package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/Aman-CERP/optindex/internal/errors"
	"github.com/Aman-CERP/optindex/pkg/indexer"
)

// jumpOutput is the JSON shape of `optindex jump`.
type jumpOutput struct {
	Letter   string           `json:"letter"`
	Found    bool             `json:"found"`
	Position int              `json:"position"`
	Section  *indexer.Section `json:"section,omitempty"`
}

func newJumpCmd() *cobra.Command {
	var catalogFlag, format string

	cmd := &cobra.Command{
		Use:   "jump <letter> [query]",
		Short: "Resolve a rail letter to its section",
		Long: `Resolve a rail letter to the position of its section in the grouped
result for a catalog and optional query.

A letter with no section is not an error: the rail simply does not move.`,
		Example: `  optindex jump z
  optindex jump M --catalog sizes
  optindex jump a ad --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJump(cmd, args[0], strings.Join(args[1:], " "), catalogFlag, format)
		},
	}

	cmd.Flags().StringVarP(&catalogFlag, "catalog", "c", "", "Catalog name (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json")

	return cmd
}

func runJump(cmd *cobra.Command, rawLetter, query, catalogFlag, formatFlag string) error {
	letter, ok := indexer.ParseLetter(rawLetter)
	if !ok {
		return apperrors.New(apperrors.ErrCodeInvalidLetter,
			fmt.Sprintf("letter must be a single character, got %q", rawLetter), nil).
			WithSuggestion("Pass one rail letter, for example 'optindex jump z'")
	}

	cfg, reg, err := loadEnv()
	if err != nil {
		return err
	}
	format, err := resolveFormat(formatFlag, cfg)
	if err != nil {
		return err
	}
	cat, err := reg.Get(catalogName(catalogFlag, cfg))
	if err != nil {
		return err
	}

	res := indexer.FilterAndGroup(cat.Options, query)
	result := jumpOutput{Letter: letter}
	if pos, found := indexer.ResolveJump(res.JumpIndex, letter); found {
		result.Found = true
		result.Position = pos
		result.Section = &res.Sections[pos]
	}

	out := newWriter(cmd, cfg)
	if format == "json" {
		return out.JSON(result)
	}

	if !result.Found {
		out.Statusf("·", "no section for %s", letter)
		return nil
	}
	out.Statusf("→", "%s is section %d of %d", letter, result.Position, len(res.Sections))
	out.Sections(indexer.Result{
		Sections:  []indexer.Section{*result.Section},
		JumpIndex: indexer.JumpIndex{letter: 0},
	})
	return nil
}
