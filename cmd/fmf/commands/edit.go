package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmf/internal/editor"
	"github.com/thoreinstein/fmf/internal/errors"
	"github.com/thoreinstein/fmf/internal/logging"
	"github.com/thoreinstein/fmf/pkg/fmf"
	"github.com/thoreinstein/fmf/pkg/frontmatter"
	"github.com/thoreinstein/fmf/pkg/metadata"
)

var editStyle string

// editText is swapped out in tests.
var editText = func(cmd *cobra.Command, text, pattern string) (string, error) {
	return newEditor(cmd).EditText(cmd.Context(), text, pattern)
}

func init() {
	editCmd.Flags().StringVarP(&editStyle, "style", "s", "", "style for the rewritten block (default: keep the current one)")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Edit frontmatter in $EDITOR",
	Long: `Open the frontmatter of a file in your editor, without delimiters or line
prefixes. On save the text must be valid YAML; it is then written back
verbatim, so comments survive. Saving an empty buffer removes the block.

Uses $EDITOR, then $VISUAL, then nano, then vi.`,
	Example: `  fmf edit script.py
  EDITOR="code --wait" fmf edit post.md

See Also: fmf set, fmf raw`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts := engineOptions(cmd)

	block, err := fmf.ReadBlock(path, opts...)
	if err != nil {
		return err
	}

	var raw string
	var style frontmatter.Style
	switch {
	case editStyle != "":
		if style, err = frontmatter.ParseStyle(editStyle); err != nil {
			return err
		}
	case block != nil:
		style = block.Style
	default:
		if style, err = resolveStyle("", path); err != nil {
			return err
		}
	}
	if block != nil {
		raw = block.Raw
	}

	edited, err := editText(cmd, raw, "fmf-*.yaml")
	if err != nil {
		return errors.NewSystemError(err, "Set editor in the config, or $VISUAL or $EDITOR, to a working editor")
	}

	logger := logging.FromContext(cmd.Context())
	if edited == raw && (block == nil || style == block.Style) {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes")
		return nil
	}

	if strings.TrimSpace(edited) == "" {
		if err := mutate(cmd, path, func() error { return fmf.Strip(path, opts...) }); err != nil {
			return err
		}
		logger.Info("removed frontmatter", slog.String("path", path))
		return nil
	}

	if _, err := metadata.Decode(edited); err != nil {
		return errors.NewUserError(err, "Fix the YAML and run fmf edit again")
	}

	if err := mutate(cmd, path, func() error {
		return fmf.InsertRaw(path, edited, style, opts...)
	}); err != nil {
		return err
	}
	logger.Info("updated frontmatter", slog.String("path", path), slog.String("style", style.String()))
	return nil
}

// newEditor returns the configured editor attached to cmd's streams.
func newEditor(cmd *cobra.Command) *editor.Editor {
	e := editor.New(currentConfig().Editor)
	e.Stdin, e.Stdout, e.Stderr = cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()
	return e
}
