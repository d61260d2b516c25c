package usecase

import (
	"context"

	"github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/mock"

	"github.com/naka-gawa/github-assistant/internal/gateway"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchUser(ctx context.Context, username string) (*github.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.User), args.Error(1)
}

func (m *mockFetcher) FetchUserRepos(ctx context.Context, username string) ([]*github.Repository, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*github.Repository), args.Error(1)
}

func (m *mockFetcher) FetchUserEvents(ctx context.Context, username string) ([]*github.Event, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*github.Event), args.Error(1)
}

func (m *mockFetcher) FetchContributionTotal(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}

func (m *mockFetcher) FetchRepo(ctx context.Context, owner, name string) (*github.Repository, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.Repository), args.Error(1)
}

func (m *mockFetcher) FetchTreeFiles(ctx context.Context, owner, name, branch string) ([]string, error) {
	args := m.Called(ctx, owner, name, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockFetcher) FetchFileContent(ctx context.Context, owner, name, path, ref string) (string, error) {
	args := m.Called(ctx, owner, name, path, ref)
	return args.String(0), args.Error(1)
}

func (m *mockFetcher) FetchContributors(ctx context.Context, owner, name string) ([]*github.Contributor, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*github.Contributor), args.Error(1)
}

func (m *mockFetcher) FetchCommitActivity(ctx context.Context, owner, name string) ([]*github.WeeklyCommitActivity, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*github.WeeklyCommitActivity), args.Error(1)
}

func (m *mockFetcher) FetchLanguages(ctx context.Context, owner, name string) (map[string]int, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *mockFetcher) FetchIssues(ctx context.Context, owner, name string) ([]*github.Issue, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*github.Issue), args.Error(1)
}

// mockCompleter is a mock implementation of the gateway.Completer interface.
type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string, opts gateway.CompletionOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}
