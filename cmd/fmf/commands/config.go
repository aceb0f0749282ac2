package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/fmf/internal/config"
	"github.com/thoreinstein/fmf/internal/errors"
	"github.com/thoreinstein/fmf/internal/paths"
	"github.com/thoreinstein/fmf/pkg/fileutil"
)

var (
	configInitProject bool
	configInitForce   bool
)

func init() {
	configInitCmd.Flags().BoolVar(&configInitProject, "project", false, "write ./.fmf/config.yaml instead of the user config")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show fmf configuration",
	Long: `Print the effective configuration as YAML: defaults, overridden by the
config file, overridden by FMF_* environment variables.

The project file is the nearest .fmf/config.yaml at or above the working
directory. Without one, the user config directory is used (~/.config/fmf
on Linux, or $FMF_CONFIG_DIR).

A file that fails validation is still shown, followed by the problems, so
it can be fixed with 'fmf config edit'.`,
	Example: `  # Show the effective configuration
  fmf config

  # Get a single value
  fmf config get style

  # Create a project config
  fmf config init --project

See Also: fmf styles`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Get a single configuration value by key. List values are printed one per line.`,
	Example: `  fmf config get key_order

See Also: fmf config`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write the default configuration to the user config file, or with
--project to ./.fmf/config.yaml. An existing file is kept unless --force
is given.`,
	Example: `  fmf config init
  fmf config init --project --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in your editor",
	Long: `Open the config file in use in your editor. If none exists, run
'fmf config init' first.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	// An invalid file is shown as loaded, not as the defaults.
	var v any = currentConfig()
	if configLoadErr != nil {
		v = viper.AllSettings()
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	w := cmd.OutOrStdout()
	if f := config.FileUsed(); f != "" {
		fmt.Fprintf(w, "# %s\n", f)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	w := cmd.OutOrStdout()

	if !viper.IsSet(key) {
		fmt.Fprintln(w, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := config.UserConfigFile()
	if configInitProject {
		path = filepath.Join(paths.ProjectConfigDir("."), paths.ConfigFileName+".yaml")
	}

	exists, err := fileutil.Exists(path)
	if err != nil {
		return err
	}
	if exists && !configInitForce {
		return errors.NewUserError(errors.Newf("config file already exists at %s", path), "Pass --force to overwrite it")
	}

	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return err
	}
	if err := fileutil.AtomicWriteYAML(path, config.Default()); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := config.FileUsed()
	if path == "" {
		return errors.NewUserError(errors.New("no config file found"), "Run: fmf config init")
	}
	return newEditor(cmd).Open(cmd.Context(), path)
}
