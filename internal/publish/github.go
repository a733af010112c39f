package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrBadCredentials = errors.New("github rejected the token")
	ErrRepoExists     = errors.New("repository already exists")
)

// Remote holds the URLs of a freshly created hosted repository.
type Remote struct {
	HTMLURL  string `json:"html_url"`
	CloneURL string `json:"clone_url"`
	SSHURL   string `json:"ssh_url"`
}

// GitHub is a minimal client for the repository-hosting REST API.
type GitHub struct {
	token   string
	baseURL string
	client  *http.Client
}

// GitHubOption configures a GitHub client.
type GitHubOption func(*GitHub)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(url string) GitHubOption {
	return func(g *GitHub) { g.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) GitHubOption {
	return func(g *GitHub) { g.client = c }
}

// NewGitHub creates a client authenticated with a personal access token.
func NewGitHub(token string, opts ...GitHubOption) *GitHub {
	g := &GitHub{
		token:   token,
		baseURL: "https://api.github.com",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CreateRemote creates a repository for the authenticated user and returns
// its URLs. A name collision surfaces as ErrRepoExists so callers can treat
// re-publishing as a no-op.
func (g *GitHub) CreateRemote(ctx context.Context, name, description string, private bool) (*Remote, error) {
	payload, err := json.Marshal(map[string]any{
		"name":        name,
		"description": description,
		"private":     private,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/user/repos", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create repository: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusCreated:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrBadCredentials
	case http.StatusUnprocessableEntity:
		return nil, ErrRepoExists
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("create repository: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var remote Remote
	if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &remote, nil
}

// LatestReleaseTag returns the tag name of a repository's latest release.
// Used by the version command's update check.
func (g *GitHub) LatestReleaseTag(ctx context.Context, owner, repo string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", g.baseURL, owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch latest release: HTTP %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decode release: %w", err)
	}
	return release.TagName, nil
}
