package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rjoshi/studyops/internal/profile"
	"github.com/rjoshi/studyops/internal/steps"
)

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Evaluate and persist the learner profile from current stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, log, err := newRunner(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		return runner.Reflect(cmd.Context(), reflectInputFromFlags(cmd.Flags()))
	},
}

// reflectInputFromFlags assembles the evaluation input. An exercise bundle is
// built as soon as any exercise flag was set, so a lone --accuracy still
// reaches the profiler.
func reflectInputFromFlags(flags *pflag.FlagSet) steps.ReflectInput {
	in := steps.ReflectInput{}

	if flags.Changed("completed") || flags.Changed("total") || flags.Changed("accuracy") {
		completed, _ := flags.GetInt("completed")
		total, _ := flags.GetInt("total")
		ex := &profile.ExerciseStats{Completed: completed, Total: total}
		if flags.Changed("accuracy") {
			acc, _ := flags.GetInt("accuracy")
			ex.Accuracy = &acc
		}
		in.Exercise = ex
	}
	if flags.Changed("self-score") {
		s, _ := flags.GetInt("self-score")
		in.SelfScore = &s
	}
	in.CommitsPerWeek, _ = flags.GetInt("commits-per-week")
	in.ReposContributed, _ = flags.GetInt("repos")
	in.StarsReceived, _ = flags.GetInt("stars")
	return in
}

func init() {
	reflectCmd.Flags().Int("completed", 0, "Exercises completed")
	reflectCmd.Flags().Int("total", 0, "Exercises attempted in total")
	reflectCmd.Flags().Int("accuracy", 0, "Exercise accuracy percent")
	reflectCmd.Flags().Int("self-score", 0, "Self-assessment score (0-100)")
	reflectCmd.Flags().Int("commits-per-week", 0, "Average commits per week")
	reflectCmd.Flags().Int("repos", 0, "Repositories contributed to")
	reflectCmd.Flags().Int("stars", 0, "Stars received across repositories")
}
