package service

import (
	"context"
	"regexp"
	"time"

	"github.com/soryntech/portfolio-api/internal/upstream"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

// GitHub's username grammar: alphanumeric and hyphens, 1-39 characters,
// no leading or trailing hyphen. Checked before any upstream call.
var githubUsernameRe = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,37}[a-zA-Z0-9])?$`)

// contributionWindow spans ~52 weeks ending now.
const contributionWindowDays = 364

// GitHubService validates usernames and proxies GitHub reads.
type GitHubService struct {
	client *upstream.GitHubClient
	now    func() time.Time
}

// NewGitHubService builds the service.
func NewGitHubService(client *upstream.GitHubClient) *GitHubService {
	return &GitHubService{client: client, now: time.Now}
}

// ValidGitHubUsername reports whether the name satisfies GitHub's grammar.
func ValidGitHubUsername(name string) bool {
	return githubUsernameRe.MatchString(name)
}

// User fetches account metadata for the username.
func (s *GitHubService) User(ctx context.Context, username string) (*upstream.GitHubUser, error) {
	if !ValidGitHubUsername(username) {
		return nil, apperrors.NewInvalidRequest("Invalid username")
	}
	return s.client.User(ctx, username)
}

// Contributions fetches the contribution calendar for a sliding ~52-week
// window ending at request time, passed upstream as explicit from/to
// timestamps.
func (s *GitHubService) Contributions(ctx context.Context, username string) (*upstream.ContributionCalendar, error) {
	if !ValidGitHubUsername(username) {
		return nil, apperrors.NewInvalidRequest("Invalid username")
	}

	to := s.now()
	from := to.AddDate(0, 0, -contributionWindowDays)
	return s.client.Contributions(ctx, username, from, to)
}
