package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmf/internal/translate"
	"github.com/thoreinstein/fmf/pkg/fmf"
)

var (
	readFormat string
	readBody   bool
	rawOffset  bool
)

func init() {
	readCmd.Flags().StringVarP(&readFormat, "format", "f", "yaml", "output format: yaml, json, toml")
	readCmd.Flags().BoolVar(&readBody, "body", false, "print the body after the metadata")
	rawCmd.Flags().BoolVar(&rawOffset, "offset", false, "append a tab and the body's byte offset")

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(rawCmd)
	rootCmd.AddCommand(bodyCmd)
}

var readCmd = &cobra.Command{
	Use:   "read <file>",
	Short: "Print a file's metadata",
	Long: `Print the decoded frontmatter of a file.

A file without frontmatter prints empty metadata. With --body the body
follows the metadata, separated by a blank line.`,
	Example: `  fmf read post.md
  fmf read script.py --format json

See Also: fmf raw, fmf body`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

var rawCmd = &cobra.Command{
	Use:   "raw <file>",
	Short: "Print a file's frontmatter text without decoding it",
	Long: `Print the frontmatter text with delimiters and line prefixes removed.

With --offset the text is followed by a tab and the byte offset at which
the body starts. Nothing is printed for a file without frontmatter.`,
	Example: `  fmf raw script.py
  fmf raw post.md --offset

See Also: fmf read`,
	Args: cobra.ExactArgs(1),
	RunE: runRaw,
}

var bodyCmd = &cobra.Command{
	Use:   "body <file>",
	Short: "Print the content after the frontmatter",
	Long:  `Print the bytes that follow the frontmatter block, unchanged.`,
	Example: `  fmf body post.md > post.txt

See Also: fmf strip`,
	Args: cobra.ExactArgs(1),
	RunE: runBody,
}

func runRead(cmd *cobra.Command, args []string) error {
	format, err := translate.ParseFormat(readFormat)
	if err != nil {
		return err
	}

	body, meta, err := fmf.Read(args[0], engineOptions(cmd)...)
	if err != nil {
		return err
	}

	out, err := translate.Encode(meta, format)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if _, err := w.Write(out); err != nil {
		return err
	}
	if readBody {
		fmt.Fprintln(w)
		_, err = w.Write(body)
	}
	return err
}

func runRaw(cmd *cobra.Command, args []string) error {
	raw, offset, err := fmf.ReadFrontmatterRaw(args[0], engineOptions(cmd)...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if rawOffset {
		_, err = fmt.Fprintf(w, "%s\t%d\n", raw, offset)
		return err
	}
	_, err = fmt.Fprint(w, raw)
	return err
}

func runBody(cmd *cobra.Command, args []string) error {
	body, _, err := fmf.ReadRaw(args[0], engineOptions(cmd)...)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(body)
	return err
}
