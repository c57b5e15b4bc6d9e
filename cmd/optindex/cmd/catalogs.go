package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type catalogInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Size  int    `json:"size"`
}

func newCatalogsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "catalogs",
		Short: "List available catalogs",
		Long: `List the built-in catalogs and any extra catalog files named in
configuration, with their option counts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, reg, err := loadEnv()
			if err != nil {
				return err
			}
			f, err := resolveFormat(format, cfg)
			if err != nil {
				return err
			}

			all := reg.All()
			infos := make([]catalogInfo, 0, len(all))
			for _, c := range all {
				infos = append(infos, catalogInfo{Name: c.Name, Title: c.Title, Size: len(c.Options)})
			}

			if f == "json" {
				return newWriter(cmd, cfg).JSON(infos)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tTITLE\tOPTIONS")
			for _, info := range infos {
				marker := ""
				if info.Name == cfg.Catalogs.Default {
					marker = " (default)"
				}
				_, _ = fmt.Fprintf(tw, "%s%s\t%s\t%d\n", info.Name, marker, info.Title, info.Size)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json")

	return cmd
}
