package cmd

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/optindex/pkg/indexer"
)

// groupOutput is the JSON shape of `optindex group`.
type groupOutput struct {
	Catalog   string              `json:"catalog"`
	Query     string              `json:"query"`
	Total     int                 `json:"total"`
	Sections  []indexer.Section   `json:"sections"`
	JumpIndex indexer.JumpIndex   `json:"jump_index"`
	Rail      []indexer.RailEntry `json:"rail"`
}

type groupOptions struct {
	catalog string
	format  string
	rail    bool
}

func newGroupCmd() *cobra.Command {
	var opts groupOptions

	cmd := &cobra.Command{
		Use:   "group [query]",
		Short: "Filter a catalog and print it grouped by letter",
		Long: `Filter a catalog by a case-insensitive substring and print the matches
grouped into alphabetical sections.

An empty query prints the whole catalog.`,
		Example: `  optindex group
  optindex group ad --catalog brands
  optindex group shirt --catalog categories --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroup(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.catalog, "catalog", "c", "", "Catalog name (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text, json")
	cmd.Flags().BoolVar(&opts.rail, "rail", false, "Also print the letter rail (text format)")

	return cmd
}

func runGroup(cmd *cobra.Command, query string, opts groupOptions) error {
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

	slog.Debug("group_started", slog.String("catalog", cat.Name), slog.String("query", query))
	start := time.Now()
	res := indexer.FilterAndGroup(cat.Options, query)
	slog.Debug("group_complete",
		slog.Int("matches", res.Len()),
		slog.Int("sections", len(res.Sections)),
		slog.Duration("duration", time.Since(start)))

	out := newWriter(cmd, cfg)
	if format == "json" {
		return out.JSON(groupOutput{
			Catalog:   cat.Name,
			Query:     query,
			Total:     res.Len(),
			Sections:  res.Sections,
			JumpIndex: res.JumpIndex,
			Rail:      indexer.Rail(res, cfg.Picker.Alphabet),
		})
	}

	out.Sections(res)
	if opts.rail {
		out.Newline()
		out.Rail(indexer.Rail(res, cfg.Picker.Alphabet))
	}
	return nil
}
