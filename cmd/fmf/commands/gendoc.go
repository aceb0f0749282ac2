package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/fmf/internal/errors"
	"github.com/thoreinstein/fmf/internal/logging"
	"github.com/thoreinstein/fmf/internal/paths"
	"github.com/thoreinstein/fmf/pkg/fmf"
	"github.com/thoreinstein/fmf/pkg/frontmatter"
	"github.com/thoreinstein/fmf/pkg/metadata"
)

var (
	genDocDir     string
	genDocBaseURL string
	genDocStyle   string
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown reference pages for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runGenDoc,
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "output directory")
	genDocCmd.Flags().StringVar(&genDocBaseURL, "base-url", "/docs/reference/", "URL prefix for links between pages")
	genDocCmd.Flags().StringVarP(&genDocStyle, "style", "s", "yaml", "frontmatter style for the generated pages")
	_ = genDocCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(genDocCmd)
}

func runGenDoc(cmd *cobra.Command, _ []string) error {
	style, err := frontmatter.ParseStyle(genDocStyle)
	if err != nil {
		return err
	}
	if err := paths.EnsureDir(genDocDir, 0); err != nil {
		return err
	}

	base := strings.TrimSuffix(genDocBaseURL, "/") + "/"
	link := func(name string) string {
		return base + strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name))) + "/"
	}
	if err := doc.GenMarkdownTreeCustom(rootCmd, genDocDir, func(string) string { return "" }, link); err != nil {
		return errors.Wrap(err, "generating markdown")
	}

	// Each page gets frontmatter written by fmf itself.
	logger := logging.FromContext(cmd.Context())
	n := 0
	for _, c := range docCommands(rootCmd) {
		page := filepath.Join(genDocDir, docFileName(c))
		if err := fmf.Insert(page, pageMeta(c), style, fmf.WithLogger(logger)); err != nil {
			return errors.Wrapf(err, "adding frontmatter to %s", page)
		}
		n++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pages to %s\n", n, genDocDir)
	return nil
}

// docCommands returns c and its descendants that cobra/doc writes a page for.
func docCommands(c *cobra.Command) []*cobra.Command {
	if !c.IsAvailableCommand() && c != c.Root() {
		return nil
	}
	out := []*cobra.Command{c}
	for _, sub := range c.Commands() {
		if sub.IsAdditionalHelpTopicCommand() {
			continue
		}
		out = append(out, docCommands(sub)...)
	}
	return out
}

// docFileName matches cobra/doc's naming: "fmf config init" → fmf_config_init.md.
func docFileName(c *cobra.Command) string {
	return strings.ReplaceAll(c.CommandPath(), " ", "_") + ".md"
}

func pageMeta(c *cobra.Command) *metadata.Metadata {
	m := metadata.New()
	m.Set("title", c.CommandPath())
	m.Set("description", c.Short)
	m.Set("draft", false)
	m.Set("toc", true)
	return m
}
