package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

const (
	// AppName names the directory under the XDG config home.
	AppName = "fmf"
	// ProjectDirName is the per-project configuration directory.
	ProjectDirName = ".fmf"
	// ConfigFileName is the config file name without its extension.
	ConfigFileName = "config"
	// DefaultDirPerm is used by EnsureDir when perm is 0.
	DefaultDirPerm os.FileMode = 0o755
)

var (
	ErrHomeDirNotFound = errors.New("home directory not found")
	ErrInvalidPath     = errors.New("invalid path")
)

// AppConfigDir returns the user-level config directory, for example
// ~/.config/fmf on Linux or ~/Library/Application Support/fmf on macOS.
func AppConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultConfigFile returns the user-level config file path.
func DefaultConfigFile() string {
	return filepath.Join(AppConfigDir(), ConfigFileName+".yaml")
}

// ProjectConfigDir returns the .fmf directory under root.
func ProjectConfigDir(root string) string {
	return filepath.Join(root, ProjectDirName)
}

// FindProjectConfigDir walks up from start looking for a .fmf directory and
// returns the nearest one. It reports false when the filesystem root is
// reached without finding one.
func FindProjectConfigDir(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		candidate := ProjectConfigDir(dir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// EnsureDir creates path and its parents. Existing directories keep their
// permissions.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return errors.Wrapf(os.MkdirAll(path, perm), "creating %s", path)
}

// ExpandHome replaces a leading "~" or "~/" with the home directory. Other
// forms, including "~user", are returned unchanged.
func ExpandHome(path string) (string, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return "", errors.Wrapf(ErrInvalidPath, "%q", path)
	}
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != filepath.Separator) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "expanding ~"), ErrHomeDirNotFound)
	}
	return filepath.Join(home, rest), nil
}
