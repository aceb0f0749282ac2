// Package commands implements the CLI commands for fmf.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmf/internal/config"
	"github.com/thoreinstein/fmf/internal/errors"
	"github.com/thoreinstein/fmf/internal/lock"
	"github.com/thoreinstein/fmf/internal/logging"
	"github.com/thoreinstein/fmf/pkg/fmf"
	"github.com/thoreinstein/fmf/pkg/frontmatter"
)

// lockTimeout bounds how long a mutation waits for another fmf process.
const lockTimeout = 10 * time.Second

// Persistent flag values.
var (
	verbosity  int
	quiet      bool
	logFormat  string
	logFile    string
	configPath string
	lockFlag   bool
)

// cfg is the loaded configuration; configLoadErr holds any load failure.
var (
	cfg           *config.Config
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&verbosity, "verbose", "v", "log more: -v info, -vv debug, -vvv trace")
	pf.BoolVarP(&quiet, "quiet", "q", false, "log errors only")
	pf.StringVar(&logFormat, "log-format", "text", "diagnostic log format on stderr: text or json")
	pf.StringVar(&logFile, "log-file", "", "also append JSON logs to this file")
	pf.StringVar(&configPath, "config", "", "config file (default: nearest .fmf/config.yaml, then the user config)")
	pf.BoolVar(&lockFlag, "lock", false, "hold an advisory <file>.lock while modifying a file")

	// Execute prints errors itself, with the exit code and hint.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configPath)
}

var rootCmd = &cobra.Command{
	Use:   "fmf",
	Short: "Read and rewrite frontmatter in any text file",
	Long: `fmf reads, inserts, updates, and strips frontmatter blocks at the top of
text files. Besides the YAML "---" fences used by Markdown, it understands
comment-wrapped blocks so source files can carry metadata too:

  yaml        ---  ...  ---
  html        <!---  ...  --->
  hash        #---  # ...  #---
  slash       //---  // ...  //---
  slash-star  /*---  ...  ---*/
  dash        ----  -- ...  ----

The body after the block is never re-encoded; rewrites go through a
temporary file and an atomic rename.`,
	Example: `  # Show a post's metadata as JSON
  fmf read post.md --format json

  # Add a title to a Python script
  fmf set script.py title="Sample Python Script"

  # Validate every Markdown file in a tree
  fmf check 'docs/**/*.md'

  See Also: fmf styles, fmf config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging installs the logger selected by the persistent flags as the
// slog default and on cmd's context.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pass only one of -q or -v")
	}
	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}
	logging.ConfigureColor(cmd.OutOrStdout())

	level := logLevel()
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == logging.FormatJSON {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	} else {
		handler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		handler = logging.NewMultiHandler(handler, slog.NewJSONHandler(f, opts))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// logLevel resolves -q and -v, falling back to FMF_DEBUG (1 or true for
// debug, 2 for trace) when no -v was given.
func logLevel() slog.Level {
	if quiet {
		return slog.LevelError
	}
	v := verbosity
	if v == 0 {
		switch os.Getenv("FMF_DEBUG") {
		case "1", "true":
			v = 2
		case "2":
			v = 3
		}
	}
	return logging.LevelFromVerbosity(v)
}

// checkConfig surfaces a config load failure. help, version and the config
// commands still run so a broken file can be inspected and fixed.
func checkConfig(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd == versionCmd || cmd == configCmd || cmd.Parent() == configCmd {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// currentConfig returns the loaded config, or defaults when loading failed.
func currentConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// engineOptions returns the fmf options implied by the config and logger.
func engineOptions(cmd *cobra.Command) []fmf.Option {
	c := currentConfig()
	opts := []fmf.Option{
		fmf.WithLogger(logging.FromContext(cmd.Context())),
	}
	if ks := c.KeySort(); ks != nil {
		opts = append(opts, fmf.WithKeySort(ks))
	}
	if c.OmitEmpty {
		opts = append(opts, fmf.WithOmitEmpty())
	}
	return opts
}

// resolveStyle picks the style for path: the --style flag, then the config
// style, then the file extension.
func resolveStyle(flag, path string) (frontmatter.Style, error) {
	if flag != "" {
		return frontmatter.ParseStyle(flag)
	}
	s, ok, err := currentConfig().ParsedStyle()
	if err != nil {
		return frontmatter.StyleYAML, err
	}
	if ok {
		return s, nil
	}
	return frontmatter.StyleForFile(path), nil
}

// mutate runs fn, holding the advisory lock for path when --lock or the
// config asks for it.
func mutate(cmd *cobra.Command, path string, fn func() error) error {
	if !lockFlag && !currentConfig().Lock {
		return fn()
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), lockTimeout)
	defer cancel()
	logging.FromContext(ctx).Debug("locking", "path", lock.PathFor(path))
	return lock.With(ctx, path, fn)
}

// printError writes an error and its suggestion to w.
func printError(w io.Writer, e *errors.ExitError) {
	fmt.Fprintf(w, "%s %v\n", color.RedString("Error:"), e)
	if e.Suggestion != "" {
		fmt.Fprintf(w, "%s %s\n", color.New(color.FgHiBlack).Sprint("Hint:"), e.Suggestion)
	}
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		e := errors.Classify(err)
		printError(rootCmd.ErrOrStderr(), e)
		return e.Code
	}
	return errors.ExitSuccess
}
