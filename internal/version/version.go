// Package version holds the application version string, set at build time via
// -ldflags "-X github.com/investjournal/backend/internal/version.Version=...".
package version

// Version is the application version.
var Version = "dev"
