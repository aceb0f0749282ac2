package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmf/internal/logging"
	"github.com/thoreinstein/fmf/pkg/fmf"
	"github.com/thoreinstein/fmf/pkg/metadata"
)

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(unsetCmd)
}

var setCmd = &cobra.Command{
	Use:   "set <file> <key=value>...",
	Short: "Set metadata keys",
	Long: `Set one or more metadata keys, keeping the file's frontmatter style and
the order of existing keys. New keys are appended.

Values are parsed as YAML scalars: "3" is a number, "true" a boolean,
"[a, b]" a list. Quote the value to keep it a string.`,
	Example: `  fmf set post.md title="Hello World" draft=false
  fmf set post.md tags="[go, cli]"

See Also: fmf unset, fmf insert`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSet,
}

var unsetCmd = &cobra.Command{
	Use:   "unset <file> <key>...",
	Short: "Remove metadata keys",
	Long: `Remove one or more metadata keys. Missing keys are ignored. When no keys
remain the frontmatter block is removed.`,
	Example: `  fmf unset post.md draft

See Also: fmf set, fmf strip`,
	Args: cobra.MinimumNArgs(2),
	RunE: runUnset,
}

// updateOptions adds the configured style, used when the file has no
// frontmatter yet.
func updateOptions(cmd *cobra.Command) ([]fmf.Option, error) {
	opts := engineOptions(cmd)
	s, ok, err := currentConfig().ParsedStyle()
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, fmf.WithStyle(s))
	}
	return opts, nil
}

func runSet(cmd *cobra.Command, args []string) error {
	path, assignments := args[0], args[1:]

	// Parse everything before touching the file.
	updates := metadata.New()
	if err := applySets(updates, assignments); err != nil {
		return err
	}

	opts, err := updateOptions(cmd)
	if err != nil {
		return err
	}
	err = mutate(cmd, path, func() error {
		return fmf.Update(path, func(m *metadata.Metadata) error {
			updates.Range(func(k string, v any) bool {
				m.Set(k, v)
				return true
			})
			return nil
		}, opts...)
	})
	if err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Info("updated frontmatter", slog.String("path", path), slog.Any("keys", updates.Keys()))
	return nil
}

func runUnset(cmd *cobra.Command, args []string) error {
	path, keys := args[0], args[1:]

	opts, err := updateOptions(cmd)
	if err != nil {
		return err
	}
	err = mutate(cmd, path, func() error {
		return fmf.Update(path, func(m *metadata.Metadata) error {
			for _, k := range keys {
				m.Delete(k)
			}
			return nil
		}, opts...)
	})
	if err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Info("updated frontmatter", slog.String("path", path), slog.Any("removed", keys))
	return nil
}
