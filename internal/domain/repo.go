package domain

import "github.com/google/go-github/v62/github"

// ReadmeDraft is the response document of README generation.
// RepoData is passed through from GitHub untouched.
type ReadmeDraft struct {
	RepoData   *github.Repository `json:"repoData"`
	FilesList  []string           `json:"filesList"`
	Readme     string             `json:"readme"`
	ReadmeHTML string             `json:"readmeHtml"`
}

// SourceFile is a file sampled from a repository for the README prompt.
type SourceFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// RepoVisualization holds the metrics charted by the repository visualizer.
type RepoVisualization struct {
	RepoData       *github.Repository    `json:"repoData"`
	Contributors   []*github.Contributor `json:"contributors"`
	CommitActivity []WeeklyCommits       `json:"commitActivity"`
	Languages      map[string]float64    `json:"languages"`
	Issues         IssueCounts           `json:"issues"`
	CommitStats    CommitStats           `json:"commitStats"`
	AgeDays        int                   `json:"ageDays"`
}

// WeeklyCommits is one bar of the commit activity chart.
type WeeklyCommits struct {
	Week    string `json:"week"`
	Commits int    `json:"commits"`
}

// IssueCounts splits issues by state.
type IssueCounts struct {
	Open   int `json:"open"`
	Closed int `json:"closed"`
}

// CommitStats summarises the weekly commit series.
type CommitStats struct {
	Total  int     `json:"total"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Peak   int     `json:"peak"`
}
