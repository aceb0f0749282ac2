package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmf/internal/errors"
	"github.com/thoreinstein/fmf/internal/logging"
	"github.com/thoreinstein/fmf/pkg/fmf"
)

var (
	writeStyle string
	writeFrom  string
	writeSets  []string
)

func init() {
	writeCmd.Flags().StringVarP(&writeStyle, "style", "s", "", "frontmatter style (default: from config, then file extension)")
	writeCmd.Flags().StringVar(&writeFrom, "from", "", "read metadata from a .yaml, .json, .jsonc, or .toml file")
	writeCmd.Flags().StringArrayVar(&writeSets, "set", nil, "set key=value (repeatable; values are YAML scalars)")
	rootCmd.AddCommand(writeCmd)
}

var writeCmd = &cobra.Command{
	Use:   "write <file>",
	Short: "Write a file from stdin with frontmatter",
	Long: `Create or overwrite a file. The body is read from stdin and the metadata
from --from and --set. Without metadata only the body is written.
Missing parent directories are created.`,
	Example: `  echo "Hello" | fmf write notes/new.md --set title=Hello
  pandoc in.docx -t md | fmf write out.md --from meta.json

See Also: fmf insert`,
	Args: cobra.ExactArgs(1),
	RunE: runWrite,
}

func runWrite(cmd *cobra.Command, args []string) error {
	path := args[0]

	meta, err := loadMeta(writeFrom, writeSets)
	if err != nil {
		return err
	}
	style, err := resolveStyle(writeStyle, path)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return errors.Wrap(err, "reading body from stdin")
	}

	opts := engineOptions(cmd)
	if err := mutate(cmd, path, func() error {
		return fmf.Write(path, body, meta, style, opts...)
	}); err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Info("wrote file", slog.String("path", path), slog.Int("keys", meta.Len()))
	return nil
}
