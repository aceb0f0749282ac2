package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmf/internal/errors"
	"github.com/thoreinstein/fmf/internal/logging"
	"github.com/thoreinstein/fmf/pkg/fmf"
)

var (
	insertStyle string
	insertFrom  string
	insertSets  []string
	insertRaw   bool
)

func init() {
	insertCmd.Flags().StringVarP(&insertStyle, "style", "s", "", "frontmatter style (default: from config, then file extension)")
	insertCmd.Flags().StringVar(&insertFrom, "from", "", "read metadata from a .yaml, .json, .jsonc, or .toml file")
	insertCmd.Flags().StringArrayVar(&insertSets, "set", nil, "set key=value (repeatable; values are YAML scalars)")
	insertCmd.Flags().BoolVar(&insertRaw, "raw", false, "insert the --from YAML file verbatim")
	rootCmd.AddCommand(insertCmd)
}

var insertCmd = &cobra.Command{
	Use:   "insert <file>...",
	Short: "Insert or replace frontmatter",
	Long: `Insert a frontmatter block at the top of each file, replacing any existing
block. The body is copied byte for byte.

Metadata comes from --from, then --set assignments, which override keys
read from the file. With --raw the --from file is inserted as written,
keeping its comments and formatting.`,
	Example: `  fmf insert post.md --set title="Hello" --set draft=true
  fmf insert *.py --from meta.toml
  fmf insert query.sql --from header.yaml --raw --style dash

See Also: fmf set, fmf write`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInsert,
}

func runInsert(cmd *cobra.Command, args []string) error {
	if insertRaw {
		return runInsertRaw(cmd, args)
	}
	if insertFrom == "" && len(insertSets) == 0 {
		return errors.NewUserError(errors.New("no metadata given"), "Use --from FILE or --set key=value")
	}

	meta, err := loadMeta(insertFrom, insertSets)
	if err != nil {
		return err
	}

	logger := logging.FromContext(cmd.Context())
	opts := engineOptions(cmd)
	for _, path := range args {
		style, err := resolveStyle(insertStyle, path)
		if err != nil {
			return err
		}
		if err := mutate(cmd, path, func() error {
			return fmf.Insert(path, meta, style, opts...)
		}); err != nil {
			return err
		}
		logger.Info("inserted frontmatter", slog.String("path", path), slog.String("style", style.String()))
	}
	return nil
}

func runInsertRaw(cmd *cobra.Command, args []string) error {
	if insertFrom == "" {
		return errors.NewUserError(errors.New("--raw requires --from"), "Use --from FILE with --raw")
	}
	if len(insertSets) > 0 {
		return errors.NewUserError(errors.New("--raw cannot be combined with --set"), "Drop --raw to merge assignments")
	}

	raw, err := readRawFrom(insertFrom)
	if err != nil {
		return err
	}

	logger := logging.FromContext(cmd.Context())
	opts := engineOptions(cmd)
	for _, path := range args {
		style, err := resolveStyle(insertStyle, path)
		if err != nil {
			return err
		}
		if err := mutate(cmd, path, func() error {
			return fmf.InsertRaw(path, raw, style, opts...)
		}); err != nil {
			return err
		}
		logger.Info("inserted frontmatter", slog.String("path", path), slog.String("style", style.String()))
	}
	return nil
}
