package cmd

import (
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Extract flashcards from the notes vault into an Anki deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, log, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		return runner.Create()
	},
}
