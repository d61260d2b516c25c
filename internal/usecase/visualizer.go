package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-assistant/internal/domain"
	"github.com/naka-gawa/github-assistant/internal/gateway"
)

const commitActivityWeeks = 12

// RepoVisualizer is the use case for collecting the metrics of a repository.
type RepoVisualizer struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	now     func() time.Time
}

// NewRepoVisualizer creates a new RepoVisualizer instance.
func NewRepoVisualizer(fetcher gateway.Fetcher, logger *log.Logger) *RepoVisualizer {
	return &RepoVisualizer{
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// Visualize fetches all metrics of owner/name concurrently and derives the chart series.
func (v *RepoVisualizer) Visualize(ctx context.Context, owner, name string) (*domain.RepoVisualization, error) {
	owner, name, err := domain.ValidateRepo(owner, name)
	if err != nil {
		return nil, err
	}
	v.logger.Printf("Usecase: Starting visualization of %s/%s...", owner, name)

	var repo *github.Repository
	var contributors []*github.Contributor
	var activity []*github.WeeklyCommitActivity
	var languages map[string]int
	var issues []*github.Issue

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		repo, err = v.fetcher.FetchRepo(egCtx, owner, name)
		return err
	})

	eg.Go(func() error {
		var err error
		contributors, err = v.fetcher.FetchContributors(egCtx, owner, name)
		return err
	})

	eg.Go(func() error {
		var err error
		activity, err = v.fetcher.FetchCommitActivity(egCtx, owner, name)
		return err
	})

	eg.Go(func() error {
		var err error
		languages, err = v.fetcher.FetchLanguages(egCtx, owner, name)
		return err
	})

	eg.Go(func() error {
		var err error
		issues, err = v.fetcher.FetchIssues(egCtx, owner, name)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to collect repository metrics: %w", err)
	}
	v.logger.Println("Usecase: All repository data fetched successfully.")

	if contributors == nil {
		contributors = []*github.Contributor{}
	}
	weekly := recentWeeks(activity, commitActivityWeeks)
	result := &domain.RepoVisualization{
		RepoData:       repo,
		Contributors:   contributors,
		CommitActivity: weekly,
		Languages:      languageShares(languages),
		Issues:         countIssues(issues),
		CommitStats:    commitStats(weekly),
		AgeDays:        ageInDays(repo.GetCreatedAt().Time, v.now()),
	}

	v.logger.Println("Usecase: Visualization complete.")
	return result, nil
}

// recentWeeks labels the last n weeks "Week 1".."Week n", oldest first.
func recentWeeks(activity []*github.WeeklyCommitActivity, n int) []domain.WeeklyCommits {
	if len(activity) > n {
		activity = activity[len(activity)-n:]
	}
	weeks := make([]domain.WeeklyCommits, 0, len(activity))
	for i, week := range activity {
		weeks = append(weeks, domain.WeeklyCommits{
			Week:    fmt.Sprintf("Week %d", i+1),
			Commits: week.GetTotal(),
		})
	}
	return weeks
}

// languageShares converts byte counts to percentages rounded to two decimals.
func languageShares(languages map[string]int) map[string]float64 {
	shares := make(map[string]float64, len(languages))
	total := 0
	for _, bytes := range languages {
		total += bytes
	}
	if total == 0 {
		return shares
	}
	for language, bytes := range languages {
		shares[language] = round2(float64(bytes) / float64(total) * 100)
	}
	return shares
}

func countIssues(issues []*github.Issue) domain.IssueCounts {
	var counts domain.IssueCounts
	for _, issue := range issues {
		switch issue.GetState() {
		case "open":
			counts.Open++
		case "closed":
			counts.Closed++
		}
	}
	return counts
}

func commitStats(weeks []domain.WeeklyCommits) domain.CommitStats {
	var result domain.CommitStats
	if len(weeks) == 0 {
		return result
	}
	data := make(stats.Float64Data, 0, len(weeks))
	for _, w := range weeks {
		result.Total += w.Commits
		if w.Commits > result.Peak {
			result.Peak = w.Commits
		}
		data = append(data, float64(w.Commits))
	}
	mean, _ := data.Mean()
	median, _ := data.Median()
	stdDev, _ := data.StandardDeviation()
	result.Mean = round2(mean)
	result.Median = median
	result.StdDev = round2(stdDev)
	return result
}

// ageInDays counts started days between created and now.
func ageInDays(created, now time.Time) int {
	if created.IsZero() {
		return 0
	}
	return int(math.Ceil(math.Abs(now.Sub(created).Hours()) / 24))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
