package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmf/cmd"
)

func init() {
	rootCmd.Version = cmd.Info().Version
	rootCmd.SetVersionTemplate("fmf version {{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date, and Go version of fmf.`,
	Run: func(c *cobra.Command, _ []string) {
		info := cmd.Info()
		w := c.OutOrStdout()
		fmt.Fprintf(w, "fmf version %s\n", info.Version)
		fmt.Fprintf(w, "  commit:    %s\n", info.Commit)
		fmt.Fprintf(w, "  built:     %s\n", info.Date)
		fmt.Fprintf(w, "  go:        %s\n", info.GoVersion)
	},
}
