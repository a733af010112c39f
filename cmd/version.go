package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/rjoshi/studyops/internal/publish"
)

// version is set via -ldflags at build time.
var version = "(devel)"

const (
	releaseOwner = "rjoshi"
	releaseRepo  = "studyops"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("studyops", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}
		if version == "(devel)" {
			fmt.Println("development build, skipping update check")
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		latest, err := publish.NewGitHub("").LatestReleaseTag(ctx, releaseOwner, releaseRepo)
		if err != nil {
			return fmt.Errorf("update check: %w", err)
		}

		if semver.Compare(latest, version) > 0 {
			fmt.Printf("update available: %s (run your package manager to upgrade)\n", latest)
		} else {
			fmt.Println("up to date")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
