package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/soryntech/portfolio-api/internal/config"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

// GitHubClient reads public account metadata over REST and the contribution
// calendar over GraphQL. The GraphQL endpoint requires a token.
type GitHubClient struct {
	apiBaseURL string
	graphqlURL string
	token      string
	client     *http.Client
}

// NewGitHubClient builds the client.
func NewGitHubClient(cfg config.GitHubConfig, timeout time.Duration) *GitHubClient {
	return &GitHubClient{
		apiBaseURL: cfg.APIBaseURL,
		graphqlURL: cfg.GraphQLURL,
		token:      cfg.Token,
		client:     &http.Client{Timeout: timeout},
	}
}

// GitHubUser is the subset of account metadata the client renders.
type GitHubUser struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// ContributionDay is one cell of the contribution calendar.
type ContributionDay struct {
	Date              string `json:"date"`
	ContributionCount int    `json:"contributionCount"`
}

// ContributionWeek is one column of the contribution calendar.
type ContributionWeek struct {
	ContributionDays []ContributionDay `json:"contributionDays"`
}

// ContributionCalendar is the bounded-window calendar with account metadata.
type ContributionCalendar struct {
	CreatedAt          string             `json:"createdAt"`
	TotalContributions int                `json:"totalContributions"`
	Weeks              []ContributionWeek `json:"weeks"`
}

// User fetches account metadata for the username.
func (c *GitHubClient) User(ctx context.Context, username string) (*GitHubUser, error) {
	url := fmt.Sprintf("%s/users/%s", c.apiBaseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamUnreachable(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, apperrors.NewNotFound("Not Found")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, apperrors.NewUpstreamError(resp.StatusCode)
	}

	var user GitHubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, apperrors.NewUpstreamUnreachable(err)
	}
	return &user, nil
}

const contributionsQuery = `query($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    createdAt
    contributionsCollection(from: $from, to: $to) {
      contributionCalendar {
        totalContributions
        weeks { contributionDays { date contributionCount } }
      }
    }
  }
}`

type graphqlResponse struct {
	Data struct {
		User *struct {
			CreatedAt               string `json:"createdAt"`
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int                `json:"totalContributions"`
					Weeks              []ContributionWeek `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Contributions fetches the contribution calendar for the explicit
// [from, to] window.
func (c *GitHubClient) Contributions(ctx context.Context, username string, from, to time.Time) (*ContributionCalendar, error) {
	if c.token == "" {
		return nil, apperrors.NewConfigurationError([]string{"GITHUB_TOKEN"})
	}

	payload, err := json.Marshal(map[string]any{
		"query": contributionsQuery,
		"variables": map[string]any{
			"login": username,
			"from":  from.UTC().Format(time.RFC3339),
			"to":    to.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamUnreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, apperrors.NewUpstreamError(resp.StatusCode)
	}

	var parsed graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewUpstreamUnreachable(err)
	}
	if parsed.Data.User == nil {
		if len(parsed.Errors) > 0 {
			// GraphQL reports unknown logins as errors with a null user.
			return nil, apperrors.NewNotFound("Not Found")
		}
		return nil, apperrors.NewUpstreamError(http.StatusBadGateway)
	}

	calendar := parsed.Data.User.ContributionsCollection.ContributionCalendar
	return &ContributionCalendar{
		CreatedAt:          parsed.Data.User.CreatedAt,
		TotalContributions: calendar.TotalContributions,
		Weeks:              calendar.Weeks,
	}, nil
}
