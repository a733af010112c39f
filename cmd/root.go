package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rjoshi/studyops/internal/config"
	"github.com/rjoshi/studyops/internal/logging"
	"github.com/rjoshi/studyops/internal/steps"
	"github.com/rjoshi/studyops/internal/ui/theme"
)

var rootCmd = &cobra.Command{
	Use:   "studyops",
	Short: "Personal learning-operations CLI",
	Long: "Studyops automates a self-directed study workflow: extract flashcards from " +
		"notes, publish lab projects to GitHub, track coding time, and maintain a " +
		"scored learner profile.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("vault", "", "Notes vault directory (overrides STUDYOPS_VAULT_DIR)")
	rootCmd.PersistentFlags().String("workspace", "", "Lab projects directory (overrides STUDYOPS_WORKSPACE_DIR)")
	rootCmd.PersistentFlags().String("username", "", "Learner username (overrides STUDYOPS_USERNAME)")
	rootCmd.PersistentFlags().String("profile-dir", "", "Profile storage directory (overrides STUDYOPS_PROFILE_DIR)")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig merges flag overrides (highest priority) over the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("vault"); v != "" {
		cfg.VaultDir = v
		if cfg.DeckDir == "" {
			cfg.DeckDir = v
		}
	}
	if w, _ := cmd.Flags().GetString("workspace"); w != "" {
		cfg.WorkspaceDir = w
	}
	if u, _ := cmd.Flags().GetString("username"); u != "" {
		cfg.Username = u
	}
	if p, _ := cmd.Flags().GetString("profile-dir"); p != "" {
		cfg.ProfileDir = p
	}
	return cfg, nil
}

// newRunner builds the shared step runner for a command invocation.
func newRunner(cmd *cobra.Command) (*steps.Runner, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(cfg.LogLevel)
	return steps.NewRunner(cfg, log, theme.NewPrinter(os.Stdout)), log, nil
}
