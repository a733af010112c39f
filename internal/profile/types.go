package profile

import "time"

// Level is the coarse proficiency band derived from the overall score.
type Level string

const (
	LevelJunior       Level = "junior"
	LevelIntermediate Level = "intermediate"
	LevelSenior       Level = "senior"
)

// LevelForScore maps an overall score to a Level. Total over all integers:
// anything at or below 40 is junior, 41-75 intermediate, 76 and above senior.
func LevelForScore(score int) Level {
	switch {
	case score <= 40:
		return LevelJunior
	case score <= 75:
		return LevelIntermediate
	default:
		return LevelSenior
	}
}

// Confidence is the self-reported reliability tier of a skill assessment.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// SkillAssessment is one skill's evaluation. It is immutable once built;
// re-evaluation replaces it wholesale.
type SkillAssessment struct {
	Name          string     `json:"name"`
	Score         int        `json:"score"`
	PracticeHours int        `json:"practice_hours"`
	LastUsed      *string    `json:"last_used,omitempty"`
	Confidence    Confidence `json:"confidence"`
}

// LearnerProfile is the persisted scored snapshot of one learner, keyed by
// username. A profile is constructed fresh on every evaluation; loaded
// profiles are never mutated incrementally.
type LearnerProfile struct {
	Username          string              `json:"username"`
	Level             Level               `json:"level"`
	OverallScore      int                 `json:"overall_score"`
	CompletedMissions int                 `json:"completed_missions"`
	Skills            []SkillAssessment   `json:"skills"`
	LearningGaps      []string            `json:"learning_gaps"`
	MissionsByRole    map[string][]string `json:"missions_by_role"`
	LastEvaluated     *time.Time          `json:"last_evaluated,omitempty"`
}

// Skill returns the assessment for name, or nil if the profile doesn't
// contain it. Lookup is case-insensitive; skill names are stored lower-case.
func (p *LearnerProfile) Skill(name string) *SkillAssessment {
	key := normalizeSkillName(name)
	for i := range p.Skills {
		if p.Skills[i].Name == key {
			return &p.Skills[i]
		}
	}
	return nil
}

// ExerciseStats is the practice-exercise bundle. All fields are optional;
// a nil *ExerciseStats means the source is absent entirely.
type ExerciseStats struct {
	Completed int
	Total     int
	Accuracy  *int           // percent, defaults to 50 when nil
	Topics    map[string]int // topic name -> occurrence count
}

// DeckStats is the spaced-repetition bundle.
type DeckStats struct {
	Retention *int // percent, defaults to 50 when nil
	Decks     int
	DeckNames []string
}

// VCSStats is the version-control activity bundle.
type VCSStats struct {
	CommitsPerWeek   int
	ReposContributed int
	StarsReceived    int
	Languages        []string
}
