package publish

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/user/repos", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "api-lab", body["name"])
		assert.Equal(t, true, body["private"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Remote{
			HTMLURL:  "https://github.com/dev/api-lab",
			CloneURL: "https://github.com/dev/api-lab.git",
			SSHURL:   "git@github.com:dev/api-lab.git",
		})
	}))
	defer server.Close()

	g := NewGitHub("tok", WithBaseURL(server.URL))
	remote, err := g.CreateRemote(context.Background(), "api-lab", "lab", true)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/dev/api-lab", remote.HTMLURL)
	assert.Equal(t, "https://github.com/dev/api-lab.git", remote.CloneURL)
	assert.Equal(t, "git@github.com:dev/api-lab.git", remote.SSHURL)
}

func TestCreateRemoteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"bad token", http.StatusUnauthorized, ErrBadCredentials},
		{"forbidden", http.StatusForbidden, ErrBadCredentials},
		{"name taken", http.StatusUnprocessableEntity, ErrRepoExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			g := NewGitHub("tok", WithBaseURL(server.URL))
			_, err := g.CreateRemote(context.Background(), "x", "", false)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateRemoteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	g := NewGitHub("tok", WithBaseURL(server.URL))
	_, err := g.CreateRemote(context.Background(), "x", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestLatestReleaseTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/rjoshi/studyops/releases/latest", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"tag_name": "v1.4.0"})
	}))
	defer server.Close()

	g := NewGitHub("", WithBaseURL(server.URL))
	tag, err := g.LatestReleaseTag(context.Background(), "rjoshi", "studyops")
	require.NoError(t, err)
	assert.Equal(t, "v1.4.0", tag)
}
