package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "profiles"))
	require.NoError(t, err)
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)

	acc := 85
	ret := 78
	p := Evaluate("dev",
		&ExerciseStats{Completed: 15, Total: 20, Accuracy: &acc, Topics: map[string]int{"docker": 3}},
		&DeckStats{Retention: &ret, Decks: 3, DeckNames: []string{"kubernetes"}},
		&VCSStats{CommitsPerWeek: 8, ReposContributed: 5, StarsReceived: 12, Languages: []string{"Go"}},
		nil)
	now := time.Now().UTC().Truncate(time.Second)
	p.LastEvaluated = &now
	p.MissionsByRole["sre"] = []string{"m-001", "m-002"}

	require.NoError(t, s.Save(p))

	got, err := s.Load("dev")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p, got)
}

func TestStoreSaveIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	p := Evaluate("dev", nil, nil, nil, nil)
	require.NoError(t, s.Save(p))
	first, err := os.ReadFile(filepath.Join(s.dir, "dev.json"))
	require.NoError(t, err)

	require.NoError(t, s.Save(p))
	second, err := os.ReadFile(filepath.Join(s.dir, "dev.json"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStoreLoadMissing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Load("nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreLoadRejectsInvalidDocument(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name    string
		content string
	}{
		{"not json", "not json at all"},
		{"missing required keys", `{"username":"dev"}`},
		{"wrong level tag", `{"username":"dev","level":"expert","overall_score":50,"skills":[]}`},
		{"score out of range", `{"username":"dev","level":"junior","overall_score":300,"skills":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(filepath.Join(s.dir, "dev.json"), []byte(tt.content), 0o644))
			got, err := s.Load("dev")
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestStoreSaveRequiresUsername(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.Save(&LearnerProfile{}))
}

func TestStoreLastWriterWins(t *testing.T) {
	s := newTestStore(t)

	high := 90
	first := Evaluate("dev", nil, nil, nil, nil)
	second := Evaluate("dev", nil, nil, nil, &high)
	require.NoError(t, s.Save(first))
	require.NoError(t, s.Save(second))

	got, err := s.Load("dev")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.OverallScore, got.OverallScore)
}
