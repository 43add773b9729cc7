// internal/github/client.go
package github

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// Client is a wrapper around the go-github client exposing the one read-only
// operation the scoring pipeline needs.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance. An empty token
// yields an unauthenticated client, which is enough for public repositories
// at webhook-scale request rates.
func NewClient(token string, logger *slog.Logger) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return &Client{
		gh:     github.NewClient(httpClient),
		logger: logger,
	}
}

// OverrideBaseURL points the client at a different API endpoint. Used by
// tests to target a local fake server.
func (c *Client) OverrideBaseURL(rawURL string) error {
	base, err := url.Parse(rawURL + "/")
	if err != nil {
		return err
	}
	c.gh.BaseURL = base
	return nil
}

// GetIssueLabels fetches an issue and returns its label names.
func (c *Client) GetIssueLabels(ctx context.Context, owner, name string, number int) ([]string, error) {
	c.logger.Debug("Fetching issue labels", "owner", owner, "repo", name, "issue", number)

	issue, _, err := c.gh.Issues.Get(ctx, owner, name, number)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}
	return labels, nil
}
