// Package version carries the release string, overridden at link time with
// -ldflags "-X logan/internal/version.Version=...".
package version

var Version = "0.1.0-dev"
