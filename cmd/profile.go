package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rjoshi/studyops/internal/profile"
	"github.com/rjoshi/studyops/internal/ui/theme"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect the persisted learner profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show <username>",
	Short: "Print a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, out, err := loadProfile(cmd, args[0])
		if err != nil {
			return err
		}

		out.Header("Learner profile: %s", p.Username)
		out.Success("overall score %d/100 (%s)", p.OverallScore, p.Level)
		out.Info("completed missions: %d", p.CompletedMissions)
		for _, s := range p.Skills {
			out.Info("  %-20s %3d/100  %dh practice (%s confidence)", s.Name, s.Score, s.PracticeHours, s.Confidence)
		}
		if len(p.LearningGaps) > 0 {
			out.Warn("learning gaps: %v", p.LearningGaps)
		}
		if p.LastEvaluated != nil {
			out.Info("last evaluated: %s", p.LastEvaluated.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var profileReadyCmd = &cobra.Command{
	Use:   "ready <username>",
	Short: "Check mission readiness against required skills",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, out, err := loadProfile(cmd, args[0])
		if err != nil {
			return err
		}

		skills, _ := cmd.Flags().GetStringSlice("skills")
		threshold, _ := cmd.Flags().GetInt("threshold")

		ready, issues := profile.IsReadyForMission(p, skills, threshold)
		if ready {
			out.Success("%s is ready (%d skills checked)", p.Username, len(skills))
			return nil
		}
		for _, issue := range issues {
			out.Fail("%s", issue)
		}
		return fmt.Errorf("%d readiness issues", len(issues))
	},
}

var profileProgressionCmd = &cobra.Command{
	Use:   "progression <username> <role>",
	Short: "Show the progression tier for a role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, out, err := loadProfile(cmd, args[0])
		if err != nil {
			return err
		}

		tier, stars := profile.RoleProgression(p, args[1])
		out.Success("%s / %s: %s (%d stars)", p.Username, args[1], tier, stars)
		return nil
	},
}

func loadProfile(cmd *cobra.Command, username string) (*profile.LearnerProfile, *theme.Printer, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	dir, err := cfg.ResolveProfileDir()
	if err != nil {
		return nil, nil, err
	}
	store, err := profile.NewStore(dir)
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(username)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, fmt.Errorf("no profile for %q: run `studyops reflect` first", username)
	}
	return p, theme.NewPrinter(os.Stdout), nil
}

func init() {
	profileReadyCmd.Flags().StringSlice("skills", nil, "Required skills for the mission")
	profileReadyCmd.Flags().Int("threshold", profile.DefaultReadinessThreshold, "Minimum skill score")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileReadyCmd)
	profileCmd.AddCommand(profileProgressionCmd)
}
