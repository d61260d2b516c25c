// Package gateway provides gateways to the GitHub API and to the language model,
// abstracting away the underlying REST, GraphQL and chat-completion clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-assistant/internal/domain"
)

const (
	userReposPageSize    = 100
	userEventsPageSize   = 100
	contributorsPageSize = 10
	issuesPageSize       = 100
)

// errStatsPending signals that GitHub is still computing repository statistics.
var errStatsPending = errors.New("repository statistics are still being computed")

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchUser(ctx context.Context, username string) (*github.User, error)
	FetchUserRepos(ctx context.Context, username string) ([]*github.Repository, error)
	FetchUserEvents(ctx context.Context, username string) ([]*github.Event, error)
	FetchContributionTotal(ctx context.Context, username string) (int, error)
	FetchRepo(ctx context.Context, owner, name string) (*github.Repository, error)
	FetchTreeFiles(ctx context.Context, owner, name, branch string) ([]string, error)
	FetchFileContent(ctx context.Context, owner, name, path, ref string) (string, error)
	FetchContributors(ctx context.Context, owner, name string) ([]*github.Contributor, error)
	// FetchCommitActivity returns the weekly commit totals of the last year,
	// or an empty slice when GitHub has not finished computing them.
	FetchCommitActivity(ctx context.Context, owner, name string) ([]*github.WeeklyCommitActivity, error)
	FetchLanguages(ctx context.Context, owner, name string) (map[string]int, error)
	FetchIssues(ctx context.Context, owner, name string) ([]*github.Issue, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger

	statsInitialInterval time.Duration
	statsMaxElapsed      time.Duration
}

// Option configures a GitHubGateway.
type Option func(*GitHubGateway)

// WithStatsRetry bounds how long FetchCommitActivity waits for GitHub to compute statistics.
func WithStatsRetry(initialInterval, maxElapsed time.Duration) Option {
	return func(g *GitHubGateway) {
		g.statsInitialInterval = initialInterval
		g.statsMaxElapsed = maxElapsed
	}
}

// contributionsQuery fetches the contribution calendar total of a user.
type contributionsQuery struct {
	User struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				TotalContributions githubv4.Int
			}
		}
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token makes unauthenticated requests; the GraphQL API then rejects every query.
func NewGitHubGateway(token string, logger *log.Logger, opts ...Option) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{Transport: transport}
	return newGateway(github.NewClient(httpClient), githubv4.NewClient(httpClient), logger, opts...), nil
}

func newGateway(restClient *github.Client, graphqlClient *githubv4.Client, logger *log.Logger, opts ...Option) *GitHubGateway {
	g := &GitHubGateway{
		restClient:           restClient,
		graphqlClient:        graphqlClient,
		logger:               logger,
		statsInitialInterval: 1 * time.Second,
		statsMaxElapsed:      15 * time.Second,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GitHubGateway) FetchUser(ctx context.Context, username string) (*github.User, error) {
	g.logger.Printf("Fetching user %s...", username)
	user, _, err := g.restClient.Users.Get(ctx, username)
	if err != nil {
		return nil, wrapError("failed to fetch user", err)
	}
	return user, nil
}

func (g *GitHubGateway) FetchUserRepos(ctx context.Context, username string) ([]*github.Repository, error) {
	g.logger.Printf("Fetching repositories of %s...", username)
	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: userReposPageSize},
	}
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, wrapError("failed to list user repositories", err)
	}
	return repos, nil
}

func (g *GitHubGateway) FetchUserEvents(ctx context.Context, username string) ([]*github.Event, error) {
	g.logger.Printf("Fetching public events of %s...", username)
	events, _, err := g.restClient.Activity.ListEventsPerformedByUser(ctx, username, false, &github.ListOptions{PerPage: userEventsPageSize})
	if err != nil {
		return nil, wrapError("failed to list user events", err)
	}
	return events, nil
}

func (g *GitHubGateway) FetchContributionTotal(ctx context.Context, username string) (int, error) {
	g.logger.Printf("Fetching contribution calendar of %s using GraphQL API...", username)
	var q contributionsQuery
	variables := map[string]interface{}{"login": githubv4.String(username)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return 0, fmt.Errorf("failed to execute GraphQL query for contributions: %w", err)
	}
	return int(q.User.ContributionsCollection.ContributionCalendar.TotalContributions), nil
}

func (g *GitHubGateway) FetchRepo(ctx context.Context, owner, name string) (*github.Repository, error) {
	g.logger.Printf("Fetching repository %s/%s...", owner, name)
	repo, _, err := g.restClient.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, wrapError("failed to fetch repository", err)
	}
	return repo, nil
}

func (g *GitHubGateway) FetchTreeFiles(ctx context.Context, owner, name, branch string) ([]string, error) {
	g.logger.Printf("Fetching file tree of %s/%s@%s...", owner, name, branch)
	tree, _, err := g.restClient.Git.GetTree(ctx, owner, name, branch, true)
	if err != nil {
		return nil, wrapError("failed to fetch repository tree", err)
	}
	if tree.GetTruncated() {
		g.logger.Printf("  Tree of %s/%s is truncated, listing partial contents.", owner, name)
	}
	files := make([]string, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() == "blob" {
			files = append(files, entry.GetPath())
		}
	}
	return files, nil
}

func (g *GitHubGateway) FetchFileContent(ctx context.Context, owner, name, path, ref string) (string, error) {
	file, _, _, err := g.restClient.Repositories.GetContents(ctx, owner, name, path, &github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return "", wrapError("failed to fetch file contents", err)
	}
	if file == nil {
		return "", fmt.Errorf("failed to fetch file contents: %s is a directory", path)
	}
	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode file contents of %s: %w", path, err)
	}
	return content, nil
}

func (g *GitHubGateway) FetchContributors(ctx context.Context, owner, name string) ([]*github.Contributor, error) {
	g.logger.Printf("Fetching contributors of %s/%s...", owner, name)
	opts := &github.ListContributorsOptions{ListOptions: github.ListOptions{PerPage: contributorsPageSize}}
	contributors, _, err := g.restClient.Repositories.ListContributors(ctx, owner, name, opts)
	if err != nil {
		return nil, wrapError("failed to list contributors", err)
	}
	return contributors, nil
}

func (g *GitHubGateway) FetchCommitActivity(ctx context.Context, owner, name string) ([]*github.WeeklyCommitActivity, error) {
	g.logger.Printf("Fetching commit activity of %s/%s...", owner, name)
	var activity []*github.WeeklyCommitActivity
	operation := func() error {
		weeks, _, err := g.restClient.Repositories.ListCommitActivity(ctx, owner, name)
		var accepted *github.AcceptedError
		if errors.As(err, &accepted) {
			g.logger.Println("  Commit statistics are being computed, retrying...")
			return errStatsPending
		}
		if err != nil {
			return backoff.Permanent(wrapError("failed to fetch commit activity", err))
		}
		activity = weeks
		return nil
	}

	var b backoff.BackOff = &backoff.StopBackOff{}
	if g.statsMaxElapsed > 0 {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = g.statsInitialInterval
		exp.MaxElapsedTime = g.statsMaxElapsed
		b = exp
	}
	err := backoff.Retry(operation, backoff.WithContext(b, ctx))
	if errors.Is(err, errStatsPending) {
		g.logger.Printf("  Commit statistics of %s/%s are not ready, returning no activity.", owner, name)
		return []*github.WeeklyCommitActivity{}, nil
	}
	if err != nil {
		return nil, err
	}
	return activity, nil
}

func (g *GitHubGateway) FetchLanguages(ctx context.Context, owner, name string) (map[string]int, error) {
	g.logger.Printf("Fetching languages of %s/%s...", owner, name)
	languages, _, err := g.restClient.Repositories.ListLanguages(ctx, owner, name)
	if err != nil {
		return nil, wrapError("failed to list languages", err)
	}
	return languages, nil
}

func (g *GitHubGateway) FetchIssues(ctx context.Context, owner, name string) ([]*github.Issue, error) {
	g.logger.Printf("Fetching issues of %s/%s...", owner, name)
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: issuesPageSize},
	}
	issues, _, err := g.restClient.Issues.ListByRepo(ctx, owner, name, opts)
	if err != nil {
		return nil, wrapError("failed to list issues", err)
	}
	return issues, nil
}

// wrapError marks GitHub 404 responses with domain.ErrNotFound.
func wrapError(msg string, err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w: %w", msg, domain.ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
