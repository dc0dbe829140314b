package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// updateRepo is the GitHub slug releases are published under.
const updateRepo = "Fepozopo/resynth"

// CheckForUpdate compares the running version against the latest
// GitHub release and, after confirmation, replaces the current binary
// in place.
func CheckForUpdate(current string) error {
	v, err := semver.ParseTolerant(current)
	if err != nil {
		return fmt.Errorf("cannot parse current version %q: %w", current, err)
	}
	latest, found, err := selfupdate.DetectLatest(updateRepo)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found || latest.Version.LTE(v) {
		fmt.Println("resynth is up to date")
		return nil
	}
	fmt.Printf("new version available: %s (running %s)\n", latest.Version, v)
	fmt.Printf("release notes:\n%s\n", latest.ReleaseNotes)
	fmt.Print("update now? [y/N] ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
	default:
		fmt.Println("update skipped")
		return nil
	}
	res, err := selfupdate.UpdateSelf(v, updateRepo)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Printf("updated to %s\n", res.Version)
	return nil
}
