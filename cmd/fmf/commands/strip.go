package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmf/internal/logging"
	"github.com/thoreinstein/fmf/pkg/fmf"
)

func init() {
	rootCmd.AddCommand(stripCmd)
}

var stripCmd = &cobra.Command{
	Use:   "strip <file>...",
	Short: "Remove frontmatter",
	Long: `Remove the frontmatter block from each file, leaving only the body.
Files without frontmatter are left untouched.`,
	Example: `  fmf strip post.md
  fmf strip src/*.py

See Also: fmf body`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStrip,
}

func runStrip(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())
	opts := engineOptions(cmd)
	for _, path := range args {
		if err := mutate(cmd, path, func() error {
			return fmf.Strip(path, opts...)
		}); err != nil {
			return err
		}
		logger.Info("stripped frontmatter", slog.String("path", path))
	}
	return nil
}
