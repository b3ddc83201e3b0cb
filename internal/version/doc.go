// Package version exposes build metadata for timedeck binaries.
//
// Version, Commit and BuildTime are injected with -ldflags "-X ..." and default
// to development values for local builds.
package version
