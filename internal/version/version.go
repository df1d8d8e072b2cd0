// Package version records the application version.
package version

// Version is the application version, overridden at build time via
// -ldflags "-X .../internal/version.Version=x.y.z".
var Version = "1.0.0"
