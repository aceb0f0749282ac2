package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmf/pkg/frontmatter"
)

func init() {
	rootCmd.AddCommand(stylesCmd)
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List supported frontmatter styles",
	Long: `List every frontmatter style with its delimiters, line prefix, accepted
aliases, and the file extensions it is chosen for by default.`,
	Args: cobra.NoArgs,
	RunE: runStyles,
}

func runStyles(cmd *cobra.Command, _ []string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), stylesTable())
	return err
}

func stylesTable() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Style", "Start", "End", "Prefix", "Aliases", "Extensions"})

	for _, s := range frontmatter.Styles() {
		prefix := s.Prefix()
		if prefix == "" {
			prefix = "-"
		} else {
			prefix = fmt.Sprintf("%q", prefix)
		}
		tw.AppendRow(table.Row{
			s.String(),
			s.Start(),
			s.End(),
			prefix,
			strings.Join(s.Aliases(), ", "),
			strings.Join(s.Extensions(), " "),
		})
	}
	return tw.Render()
}
