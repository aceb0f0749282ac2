// Package config provides configuration management for the fmf CLI.
//
// Configuration is optional. Without a file every command uses the library
// defaults: source key order, no empty-value suppression, no locking, and a
// style inferred from the file extension.
//
// # Configuration File
//
// Files are searched in ./.fmf/config.yaml and then
// $XDG_CONFIG_HOME/fmf/config.yaml (FMF_CONFIG_DIR overrides the latter):
//
//	version: 1
//	style: hash          # default style for new frontmatter
//	key_order: [title, date]
//	sort_keys: false     # lexical order when key_order is empty
//	omit_empty: false
//	lock: false          # take <file>.lock around mutations
//
// Every key may be overridden from the environment with the FMF_ prefix,
// e.g. FMF_STYLE=dash.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")   // search paths, defaults if absent
//	cfg, err := config.Load(path) // explicit file, must exist
//
// Load validates the result; failures match errors.ErrInvalidConfig from
// internal/errors.
package config
