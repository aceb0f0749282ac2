// Package paths resolves the locations fmf reads its configuration from.
//
// The user-level file lives under the XDG config home (github.com/adrg/xdg),
// e.g. ~/.config/fmf/config.yaml on Linux. A project may carry its own
// .fmf/config.yaml; [FindProjectConfigDir] locates the nearest one above the
// working directory.
package paths
