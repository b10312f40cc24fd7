// Package version holds the build version, set with
// -ldflags "-X quantity-editor/internal/version.Version=..."
package version

// Version is the release version
var Version = "0.1.0"
