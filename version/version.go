// Package version holds build metadata, set with -ldflags at release time:
//
//	go build -ldflags "-X github.com/ChristianF88/buddyx/version.Version=v1.0.0 -X github.com/ChristianF88/buddyx/version.Date=2025-01-01"
package version

var (
	Version = "dev"
	Date    = "unknown"
)
