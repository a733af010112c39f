package profile

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Component weights for the overall score, in percent. Kept as integers so
// the weighted sum can be computed exactly without float rounding.
const (
	weightExercise = 35
	weightDeck     = 25
	weightVCS      = 20
	weightSelf     = 20
)

// neutralScore is used for any stats bundle that is absent entirely.
const neutralScore = 50

// DefaultReadinessThreshold is the minimum skill score a mission requires
// unless the caller overrides it.
const DefaultReadinessThreshold = 60

// foundationSkills is the reference set used for gap analysis, kept in
// alphabetical order. Gap selection iterates this slice directly, which
// makes the "first 3 missing" pick deterministic.
var foundationSkills = []string{
	"bash",
	"ci/cd",
	"docker",
	"git",
	"kubernetes",
	"monitoring",
	"python",
	"terraform",
}

// Evaluate builds a fresh LearnerProfile from the three stats bundles and an
// optional self-assessment score. It never fails: nil bundles and missing
// fields degrade to documented defaults. MissionsByRole starts empty and
// LastEvaluated unset; the caller stamps it after persisting.
func Evaluate(username string, ex *ExerciseStats, deck *DeckStats, vcs *VCSStats, selfScore *int) *LearnerProfile {
	e := exerciseScore(ex)
	d := deckScore(deck)
	v := vcsScore(vcs)
	s := neutralScore
	if selfScore != nil {
		s = clampScore(*selfScore)
	}

	// Integer weighted sum: floor(e*0.35 + d*0.25 + v*0.20 + s*0.20)
	// computed exactly.
	overall := (e*weightExercise + d*weightDeck + v*weightVCS + s*weightSelf) / 100

	skills := buildSkills(ex, deck, vcs)

	return &LearnerProfile{
		Username:       username,
		Level:          LevelForScore(overall),
		OverallScore:   overall,
		Skills:         skills,
		LearningGaps:   findGaps(skills),
		MissionsByRole: map[string][]string{},
	}
}

// exerciseScore blends completion rate (60%) with accuracy (40%).
func exerciseScore(ex *ExerciseStats) int {
	if ex == nil {
		return neutralScore
	}
	completionRate := 0.0
	if ex.Total > 0 {
		completionRate = math.Min(100, float64(ex.Completed)/float64(ex.Total)*100)
	}
	accuracy := neutralScore
	if ex.Accuracy != nil {
		accuracy = *ex.Accuracy
	}
	return clampScore(int(math.Floor(completionRate*0.6 + float64(accuracy)*0.4)))
}

// deckScore is retention plus a small bonus for deck count (2 points per
// deck, capped at 20, scaled by 0.2).
func deckScore(deck *DeckStats) int {
	if deck == nil {
		return neutralScore
	}
	retention := neutralScore
	if deck.Retention != nil {
		retention = *deck.Retention
	}
	bonus := deck.Decks * 2
	if bonus > 20 {
		bonus = 20
	}
	return clampScore(retention + bonus/5)
}

// vcsScore caps three weighted activity counters (commits/week x5 up to 50,
// repos x3 up to 30, stars x2 up to 20), then scales the sum down to 0-10
// with round-to-nearest.
func vcsScore(vcs *VCSStats) int {
	if vcs == nil {
		return neutralScore
	}
	sum := capAt(vcs.CommitsPerWeek*5, 50) +
		capAt(vcs.ReposContributed*3, 30) +
		capAt(vcs.StarsReceived*2, 20)
	return clampScore((sum + 5) / 10)
}

// buildSkills merges the three skill sources. First-seen wins, with
// precedence exercise > deck > language; within one source names are
// emitted alphabetically. Names are normalized to lower case.
func buildSkills(ex *ExerciseStats, deck *DeckStats, vcs *VCSStats) []SkillAssessment {
	skills := []SkillAssessment{}
	seen := map[string]bool{}

	if ex != nil {
		topics := make([]string, 0, len(ex.Topics))
		for t := range ex.Topics {
			topics = append(topics, t)
		}
		sort.Strings(topics)
		for _, t := range topics {
			name := normalizeSkillName(t)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			occ := ex.Topics[t]
			skills = append(skills, SkillAssessment{
				Name:          name,
				Score:         capAt(occ*10, 100),
				PracticeHours: occ * 2,
				Confidence:    ConfidenceMedium,
			})
		}
	}

	if deck != nil {
		retention := neutralScore
		if deck.Retention != nil {
			retention = clampScore(*deck.Retention)
		}
		for _, d := range sortedNames(deck.DeckNames) {
			if seen[d] {
				continue
			}
			seen[d] = true
			skills = append(skills, SkillAssessment{
				Name:          d,
				Score:         retention,
				PracticeHours: 10,
				Confidence:    ConfidenceHigh,
			})
		}
	}

	if vcs != nil {
		for _, lang := range sortedNames(vcs.Languages) {
			if seen[lang] {
				continue
			}
			seen[lang] = true
			skills = append(skills, SkillAssessment{
				Name:          lang,
				Score:         70,
				PracticeHours: 20,
				Confidence:    ConfidenceHigh,
			})
		}
	}

	return skills
}

// findGaps returns up to 3 foundational skills the profile is missing
// (alphabetical order) followed by up to 2 present skills scoring below 60
// (profile order).
func findGaps(skills []SkillAssessment) []string {
	present := map[string]bool{}
	for _, s := range skills {
		present[s.Name] = true
	}

	gaps := []string{}
	missing := 0
	for _, ref := range foundationSkills {
		if missing == 3 {
			break
		}
		if !present[ref] {
			gaps = append(gaps, ref)
			missing++
		}
	}

	weak := 0
	for _, s := range skills {
		if weak == 2 {
			break
		}
		if s.Score < 60 {
			gaps = append(gaps, s.Name)
			weak++
		}
	}
	return gaps
}

// IsReadyForMission checks the profile against a mission's required skills,
// in input order. ready is true iff issues is empty.
func IsReadyForMission(p *LearnerProfile, requiredSkills []string, threshold int) (bool, []string) {
	var issues []string
	for _, req := range requiredSkills {
		skill := p.Skill(req)
		if skill == nil {
			issues = append(issues, fmt.Sprintf("Missing: %s", req))
			continue
		}
		if skill.Score < threshold {
			issues = append(issues, fmt.Sprintf("Weak: %s (%d/100) - need %d+", req, skill.Score, threshold))
		}
	}
	return len(issues) == 0, issues
}

// RoleProgression maps the number of missions completed for a role to a
// display tier and star count. The table is a fixed step function; note the
// repeated star counts at the Junior/Intermediate and Intermediate/Senior
// boundaries.
func RoleProgression(p *LearnerProfile, role string) (string, int) {
	count := len(p.MissionsByRole[role])
	switch count {
	case 0:
		return "Beginner", 0
	case 1:
		return "Junior", 2
	case 2:
		return "Junior", 3
	case 3:
		return "Intermediate", 3
	case 4:
		return "Intermediate", 4
	case 5:
		return "Senior", 4
	default:
		return "Senior", 5
	}
}

func normalizeSkillName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func sortedNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := map[string]bool{}
	for _, n := range names {
		key := normalizeSkillName(n)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func capAt(n, limit int) int {
	if n > limit {
		return limit
	}
	return n
}
