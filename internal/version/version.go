// Package version holds the release string, set at link time:
//
//	go build -ldflags "-X github.com/swemeshy/counts-to-csv/internal/version.Version=v1.2.0"
package version

var Version = "dev"
