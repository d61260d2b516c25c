package gateway

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-assistant/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler, opts ...Option) *GitHubGateway {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	// Setup REST client to point to the mock server.
	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	// Use NewEnterpriseClient to point the GraphQL client to our mock server's URL.
	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())
	logger := log.New(io.Discard, "", 0)

	return newGateway(restClient, graphqlClient, logger, opts...)
}

func TestGitHubGateway_FetchUser(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expectedLogin  string
		expectError    bool
		expectNotFound bool
	}{
		{
			name: "happy path - returns the user",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/octocat", r.URL.Path)
				fmt.Fprint(w, `{"login":"octocat","name":"The Octocat","followers":10}`)
			},
			expectedLogin: "octocat",
		},
		{
			name: "error case - unknown user is reported as not found",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectError:    true,
			expectNotFound: true,
		},
		{
			name: "error case - server error is not a not-found",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			user, err := gateway.FetchUser(context.Background(), "octocat")
			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to fetch user")
				assert.Equal(t, tc.expectNotFound, errorsIsNotFound(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedLogin, user.GetLogin())
			assert.Equal(t, 10, user.GetFollowers())
		})
	}
}

func TestGitHubGateway_FetchUserReposAndEvents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[{"id":1,"name":"hello","stargazers_count":3},{"id":2,"name":"world","stargazers_count":5}]`)
	})
	mux.HandleFunc("/users/octocat/events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[{"id":"e1","type":"PushEvent","repo":{"name":"octocat/hello"}}]`)
	})
	gateway := setupTestGateway(t, mux)

	repos, err := gateway.FetchUserRepos(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, 5, repos[1].GetStargazersCount())

	events, err := gateway.FetchUserEvents(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "PushEvent", events[0].GetType())
	assert.Equal(t, "octocat/hello", events[0].GetRepo().GetName())
}

func TestGitHubGateway_FetchContributionTotal(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       int
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:         "happy path",
			responseBody: `{"data":{"user":{"contributionsCollection":{"contributionCalendar":{"totalContributions":1234}}}}}`,
			expected:     1234,
		},
		{
			name:           "error case",
			responseBody:   `{"errors":[{"message":"Something went wrong"}]}`,
			expectError:    true,
			expectedErrMsg: "failed to execute GraphQL query for contributions",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "contributionCalendar")
				assert.Contains(t, string(body), "octocat")
				fmt.Fprint(w, tc.responseBody)
			}
			gateway := setupTestGateway(t, http.HandlerFunc(handler))

			total, err := gateway.FetchContributionTotal(context.Background(), "octocat")
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, total)
		})
	}
}

func TestGitHubGateway_FetchTreeFiles(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello/git/trees/main", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		fmt.Fprint(w, `{"sha":"abc","tree":[
			{"path":"src","type":"tree"},
			{"path":"src/main.go","type":"blob"},
			{"path":"README.md","type":"blob"},
			{"path":"vendor/lib","type":"commit"}
		]}`)
	}
	gateway := setupTestGateway(t, http.HandlerFunc(handler))

	files, err := gateway.FetchTreeFiles(context.Background(), "octocat", "hello", "main")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main.go", "README.md"}, files)
}

func TestGitHubGateway_FetchFileContent(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("package main\n"))
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello/contents/src/main.go", r.URL.Path)
		assert.Equal(t, "dev", r.URL.Query().Get("ref"))
		fmt.Fprintf(w, `{"type":"file","encoding":"base64","path":"src/main.go","content":%q}`, encoded)
	}
	gateway := setupTestGateway(t, http.HandlerFunc(handler))

	content, err := gateway.FetchFileContent(context.Background(), "octocat", "hello", "src/main.go", "dev")
	require.NoError(t, err)
	assert.Equal(t, "package main\n", content)
}

func TestGitHubGateway_FetchCommitActivity(t *testing.T) {
	t.Run("retries while statistics are being computed", func(t *testing.T) {
		var calls int32
		handler := func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusAccepted)
				fmt.Fprint(w, `{}`)
				return
			}
			fmt.Fprint(w, `[{"total":3,"week":1},{"total":7,"week":2}]`)
		}
		gateway := setupTestGateway(t, http.HandlerFunc(handler), WithStatsRetry(time.Millisecond, 5*time.Second))

		weeks, err := gateway.FetchCommitActivity(context.Background(), "octocat", "hello")
		require.NoError(t, err)
		require.Len(t, weeks, 2)
		assert.Equal(t, 7, weeks[1].GetTotal())
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("gives up with no activity when statistics never become ready", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			fmt.Fprint(w, `{}`)
		}
		gateway := setupTestGateway(t, http.HandlerFunc(handler), WithStatsRetry(time.Millisecond, 20*time.Millisecond))

		weeks, err := gateway.FetchCommitActivity(context.Background(), "octocat", "hello")
		require.NoError(t, err)
		assert.Empty(t, weeks)
	})

	t.Run("does not retry on errors", func(t *testing.T) {
		var calls int32
		handler := func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		}
		gateway := setupTestGateway(t, http.HandlerFunc(handler), WithStatsRetry(time.Millisecond, 5*time.Second))

		_, err := gateway.FetchCommitActivity(context.Background(), "octocat", "hello")
		require.Error(t, err)
		assert.True(t, errorsIsNotFound(err))
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestGitHubGateway_RepositoryMetrics(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":7,"name":"hello","full_name":"octocat/hello","stargazers_count":42}`)
	})
	mux.HandleFunc("/repos/octocat/hello/contributors", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[{"login":"octocat","contributions":30},{"login":"hubot","contributions":4}]`)
	})
	mux.HandleFunc("/repos/octocat/hello/languages", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Go":300,"Shell":100}`)
	})
	mux.HandleFunc("/repos/octocat/hello/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[{"number":1,"state":"open"},{"number":2,"state":"closed"}]`)
	})
	gateway := setupTestGateway(t, mux)
	ctx := context.Background()

	repo, err := gateway.FetchRepo(ctx, "octocat", "hello")
	require.NoError(t, err)
	assert.Equal(t, "octocat/hello", repo.GetFullName())

	contributors, err := gateway.FetchContributors(ctx, "octocat", "hello")
	require.NoError(t, err)
	require.Len(t, contributors, 2)
	assert.Equal(t, 30, contributors[0].GetContributions())

	languages, err := gateway.FetchLanguages(ctx, "octocat", "hello")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Go": 300, "Shell": 100}, languages)

	issues, err := gateway.FetchIssues(ctx, "octocat", "hello")
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "closed", issues[1].GetState())
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
