package cmd

import (
	"github.com/spf13/cobra"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Publish unpublished lab projects to GitHub",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, log, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		return runner.Share(cmd.Context())
	},
}
