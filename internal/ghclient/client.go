// Package ghclient wraps the GitHub API for fetching issues and
// discovering repositories.
package ghclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/ghkeep/ghkeep/internal/log"
	"github.com/ghkeep/ghkeep/internal/model"
)

// ErrRateLimited is returned when the GitHub API reports an exhausted
// rate limit.
var ErrRateLimited = errors.New("GitHub API rate limit exceeded")

// rateLimitTransport wraps an http.RoundTripper to surface GitHub rate
// limit exhaustion as ErrRateLimited instead of an opaque 403.
type rateLimitTransport struct {
	base http.RoundTripper
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		log.Debug("rate limit", "remaining", remaining, "url", req.URL.Path)
	}

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		if resp.Header.Get("X-RateLimit-Remaining") == "0" || resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			return nil, ErrRateLimited
		}
	}

	return resp, nil
}

// Client wraps the GitHub API client.
type Client struct {
	client *gh.Client
}

// NewClient creates a GitHub client using a personal access token. An
// empty token falls back to the GITHUB_TOKEN environment variable.
func NewClient(ctx context.Context, token string) (*Client, error) {
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("GitHub token not provided. Set the GITHUB_TOKEN environment variable")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Transport = &rateLimitTransport{
		base: tc.Transport,
	}

	return &Client{client: gh.NewClient(tc)}, nil
}

// AuthenticatedUser returns the authenticated user's login. It doubles as
// the connection and token validity check.
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

// ListRepositories fetches all repositories the authenticated user has
// access to, sorted by full name.
func (c *Client) ListRepositories(ctx context.Context) ([]model.Repository, error) {
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var repos []model.Repository
	for {
		list, resp, err := c.client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", err)
		}

		for _, r := range list {
			repos = append(repos, model.Repository{
				FullName:    r.GetFullName(),
				Owner:       r.GetOwner().GetLogin(),
				Name:        r.GetName(),
				Description: r.GetDescription(),
				Private:     r.GetPrivate(),
				OpenIssues:  r.GetOpenIssuesCount(),
				URL:         r.GetHTMLURL(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	sort.Slice(repos, func(i, j int) bool {
		return strings.ToLower(repos[i].FullName) < strings.ToLower(repos[j].FullName)
	})
	return repos, nil
}

// splitRepo splits an owner/name repository identifier.
func splitRepo(repo string) (owner, name string, err error) {
	parts := strings.SplitN(repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q (expected owner/name)", repo)
	}
	return parts[0], parts[1], nil
}
