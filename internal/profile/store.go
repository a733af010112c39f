package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// profileSchema is the structural contract a persisted profile document must
// satisfy before Load will accept it. Documents missing required keys are
// treated the same as absent profiles.
var profileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"username":      map[string]any{"type": "string", "minLength": 1},
		"level":         map[string]any{"type": "string", "enum": []any{"junior", "intermediate", "senior"}},
		"overall_score": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		"skills":        map[string]any{"type": "array"},
	},
	"required": []any{"username", "level", "overall_score", "skills"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledProfileSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(profileSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const schemaURL = "schema://learner-profile.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// Store persists one JSON document per username in a flat directory.
// There is no locking: concurrent writers to the same username race and the
// last write wins.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// DefaultDir resolves the profile storage directory in priority order:
// 1. STUDYOPS_PROFILE_DIR environment variable
// 2. $XDG_DATA_HOME/studyops/profiles
// 3. ~/.local/share/studyops/profiles
func DefaultDir() (string, error) {
	if p := os.Getenv("STUDYOPS_PROFILE_DIR"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "studyops", "profiles"), nil
}

// Save writes the profile to <dir>/<username>.json, overwriting
// unconditionally. Saving the same logical profile twice produces identical
// bytes.
func (s *Store) Save(p *LearnerProfile) error {
	if p.Username == "" {
		return errors.New("profile has no username")
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path(p.Username), data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Load reads the profile for username. It returns (nil, nil) when no record
// exists or when the stored document fails structural validation; it returns
// an error only for I/O failures unrelated to existence.
func (s *Store) Load(username string) (*LearnerProfile, error) {
	data, err := os.ReadFile(s.path(username))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, nil
	}
	sch, err := compiledProfileSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, nil
	}

	var p LearnerProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, nil
	}
	if p.MissionsByRole == nil {
		p.MissionsByRole = map[string][]string{}
	}
	return &p, nil
}

func (s *Store) path(username string) string {
	return filepath.Join(s.dir, username+".json")
}
