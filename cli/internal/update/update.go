// Package update compares the running CLI version against the latest
// published release.
package update

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-version"

	"github.com/ormkit/ormkit/cli/internal/ui"
)

// latestKnownVersion is the newest release the CLI knows about. A release
// pipeline stamps this at build time.
var latestKnownVersion = "0.1.0"

// CheckForUpdates reports whether a newer version than the current one is
// available.
func CheckForUpdates(currentVersion string) error {
	current, err := version.NewVersion(currentVersion)
	if err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}

	latest, err := version.NewVersion(latestKnownVersion)
	if err != nil {
		return fmt.Errorf("invalid latest version format: %w", err)
	}

	if current.LessThan(latest) {
		ui.PrintWarning("A new version is available!")
		fmt.Printf("Current version: %s\n", currentVersion)
		fmt.Printf("Latest version:  %s\n", latestKnownVersion)
		fmt.Printf("\nUpdate with: go install github.com/ormkit/ormkit/cli@latest\n")
	}

	return nil
}

// GetDownloadURL returns the release download URL for the current platform.
func GetDownloadURL(ver string) string {
	return fmt.Sprintf("https://github.com/ormkit/ormkit/releases/download/v%s/ormkit-%s-%s", ver, runtime.GOOS, runtime.GOARCH)
}
