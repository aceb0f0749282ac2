package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmf/internal/check"
	"github.com/thoreinstein/fmf/internal/errors"
	"github.com/thoreinstein/fmf/internal/logging"
	"github.com/thoreinstein/fmf/internal/validator"
)

var (
	checkFormat string
	checkWatch  bool
)

func init() {
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "report format: text, json")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "re-check when matching files change")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <pattern>...",
	Short: "Validate frontmatter in many files",
	Long: `Scan every file matching the patterns and decode its frontmatter.
Patterns support ** for any depth. Quote them so the shell does not
expand them first.

Unterminated blocks and invalid YAML are errors; files without
frontmatter and patterns that match nothing are warnings. The exit code
is 1 when any error is found.

With --watch the check re-runs whenever a matching file is written,
until interrupted.`,
	Example: `  fmf check 'content/**/*.md'
  fmf check 'src/**/*.py' --format json
  fmf check 'docs/**/*.md' --watch

See Also: fmf raw`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	format := validator.Format(checkFormat)
	if format != validator.FormatText && format != validator.FormatJSON {
		return errors.NewUserError(errors.Newf("unknown report format %q", checkFormat), "Use --format text or --format json")
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	out := cmd.OutOrStdout()

	if checkWatch {
		return check.Watch(ctx, args, 0, logger, func(r *check.Report, err error) {
			if err != nil {
				logger.Error("check failed", "error", err)
				return
			}
			if format == validator.FormatText {
				fmt.Fprintf(out, "\n[%s]\n", time.Now().Format(time.TimeOnly))
			}
			if err := report(out, format, r); err != nil {
				logger.Error("writing report", "error", err)
			}
		})
	}

	r, err := check.Run(ctx, args, logger)
	if errors.Is(err, check.ErrNoFiles) {
		return errors.NewUserError(err, "Check the patterns; quote them so ** reaches fmf")
	}
	if err != nil {
		return err
	}
	if err := report(out, format, r); err != nil {
		return err
	}
	if n := r.Failed(); n > 0 {
		return errors.Wrapf(errors.ErrCheckFailed, "%d of %d files", n, len(r.Files))
	}
	return nil
}

func report(w io.Writer, format validator.Format, r *check.Report) error {
	if format == validator.FormatText {
		if _, err := fmt.Fprintln(w, r.Table()); err != nil {
			return err
		}
	}
	return validator.NewReporter(w, format).Report(r.Result())
}
