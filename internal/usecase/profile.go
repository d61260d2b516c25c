// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/go-github/v62/github"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-assistant/internal/domain"
	"github.com/naka-gawa/github-assistant/internal/gateway"
)

const (
	topLanguagesLimit   = 5
	recentActivityLimit = 10
)

var profileReviewOptions = gateway.CompletionOptions{Temperature: 0.3, MaxTokens: 1500}

const profileReviewPrompt = `
You are a GitHub profile reviewer. Analyze this GitHub profile data and provide a comprehensive review with a rating out of 100.
Focus on these criteria:
1. Activity level (frequency and recency of contributions)
2. Project diversity (variety of repositories)
3. Skill breadth (programming languages and technologies used)
4. Community engagement (followers, stars received)
5. Code quality indicators (from repository descriptions and stats)

Profile data:
%s

Provide your assessment as a JSON object with these fields:
- overallScore (0-100)
- criteriaScores (object with scores for each of the 5 criteria above)
- strengths (array of strings highlighting strong points)
- areasForImprovement (array of strings with suggestions)
- summary (brief text summary of overall profile)
`

// ProfileReviewer is the use case for reviewing a GitHub profile.
// It collects the profile data and asks the language model for an assessment.
type ProfileReviewer struct {
	fetcher   gateway.Fetcher
	completer gateway.Completer
	logger    *log.Logger
}

// NewProfileReviewer creates a new ProfileReviewer instance. completer may be nil,
// in which case Review fails with domain.ErrLLMUnavailable after validation.
func NewProfileReviewer(fetcher gateway.Fetcher, completer gateway.Completer, logger *log.Logger) *ProfileReviewer {
	return &ProfileReviewer{
		fetcher:   fetcher,
		completer: completer,
		logger:    logger,
	}
}

// Review builds the profile data of username and scores it.
// When the model reply cannot be decoded the returned review still carries
// the profile data, and the error wraps domain.ErrAnalysisParse.
func (p *ProfileReviewer) Review(ctx context.Context, username string) (*domain.ProfileReview, error) {
	username, err := domain.ValidateUsername(username)
	if err != nil {
		return nil, err
	}
	if p.completer == nil {
		return nil, domain.ErrLLMUnavailable
	}
	p.logger.Printf("Usecase: Starting profile review of %s...", username)

	profileData, err := p.collect(ctx, username)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(profileData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile data: %w", err)
	}
	reply, err := p.completer.Complete(ctx, fmt.Sprintf(profileReviewPrompt, payload), profileReviewOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze profile: %w", err)
	}

	review := &domain.ProfileReview{ProfileData: profileData}
	analysis, err := parseAnalysis(reply)
	if err != nil {
		p.logger.Printf("Usecase: Could not parse analysis of %s: %v", username, err)
		return review, err
	}
	rank := domain.RankForScore(float64(analysis.OverallScore))
	analysis.Rank = &rank
	review.Analysis = analysis

	p.logger.Println("Usecase: Profile review complete.")
	return review, nil
}

// collect fetches the user, repositories and events concurrently and merges them.
func (p *ProfileReviewer) collect(ctx context.Context, username string) (*domain.ProfileData, error) {
	var user *github.User
	var repos []*github.Repository
	var events []*github.Event
	var contributions *int

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		user, err = p.fetcher.FetchUser(egCtx, username)
		return err
	})

	eg.Go(func() error {
		var err error
		repos, err = p.fetcher.FetchUserRepos(egCtx, username)
		return err
	})

	eg.Go(func() error {
		var err error
		events, err = p.fetcher.FetchUserEvents(egCtx, username)
		return err
	})

	// The contribution calendar needs an authenticated GraphQL client; a profile is still useful without it.
	eg.Go(func() error {
		total, err := p.fetcher.FetchContributionTotal(egCtx, username)
		if err != nil {
			p.logger.Printf("Usecase: Skipping contribution total: %v", err)
			return nil
		}
		contributions = &total
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	p.logger.Println("Usecase: All profile data fetched successfully.")

	data := buildProfileData(user, repos, events)
	data.Stats.TotalContributions = contributions
	return data, nil
}

func buildProfileData(user *github.User, repos []*github.Repository, events []*github.Event) *domain.ProfileData {
	data := &domain.ProfileData{
		BasicInfo: domain.BasicInfo{
			Name:        user.GetName(),
			Login:       user.GetLogin(),
			Avatar:      user.GetAvatarURL(),
			Bio:         user.GetBio(),
			Location:    user.GetLocation(),
			Company:     user.GetCompany(),
			Blog:        user.GetBlog(),
			Followers:   user.GetFollowers(),
			Following:   user.GetFollowing(),
			PublicRepos: user.GetPublicRepos(),
			CreatedAt:   user.GetCreatedAt().Time,
		},
	}

	starCounts := make(stats.Float64Data, 0, len(repos))
	data.Stats.Repositories = make([]domain.RepoSummary, 0, len(repos))
	for _, repo := range repos {
		data.Stats.TotalStars += repo.GetStargazersCount()
		starCounts = append(starCounts, float64(repo.GetStargazersCount()))
		data.Stats.Repositories = append(data.Stats.Repositories, domain.RepoSummary{
			ID:          repo.GetID(),
			Name:        repo.GetName(),
			Description: repo.GetDescription(),
			Stars:       repo.GetStargazersCount(),
			Forks:       repo.GetForksCount(),
			Language:    repo.GetLanguage(),
			UpdatedAt:   repo.GetUpdatedAt().Time,
			URL:         repo.GetHTMLURL(),
		})
	}
	data.Stats.TopLanguages = topLanguages(repos, topLanguagesLimit)
	data.Stats.StarStats = distribution(starCounts)

	if len(events) > recentActivityLimit {
		events = events[:recentActivityLimit]
	}
	data.Stats.RecentActivity = make([]domain.ActivityEvent, 0, len(events))
	for _, event := range events {
		data.Stats.RecentActivity = append(data.Stats.RecentActivity, domain.ActivityEvent{
			ID:        event.GetID(),
			Type:      event.GetType(),
			Repo:      event.GetRepo().GetName(),
			CreatedAt: event.GetCreatedAt().Time,
		})
	}
	return data
}

// topLanguages counts the primary language of each repository and returns the
// most frequent ones. Ties keep the order in which languages first appear.
func topLanguages(repos []*github.Repository, limit int) []domain.LanguageCount {
	counts := make([]domain.LanguageCount, 0)
	index := make(map[string]int)
	for _, repo := range repos {
		language := repo.GetLanguage()
		if language == "" {
			continue
		}
		if i, ok := index[language]; ok {
			counts[i].Count++
			continue
		}
		index[language] = len(counts)
		counts = append(counts, domain.LanguageCount{Language: language, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

func distribution(data stats.Float64Data) domain.Distribution {
	if data.Len() == 0 {
		return domain.Distribution{}
	}
	mean, _ := data.Mean()
	median, _ := data.Median()
	peak, _ := data.Max()
	return domain.Distribution{Mean: round2(mean), Median: median, Max: peak}
}

// parseAnalysis decodes the outermost JSON object found in a model reply.
func parseAnalysis(reply string) (*domain.Analysis, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return nil, domain.ErrAnalysisParse
	}
	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(reply[start:end+1]), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAnalysisParse, err)
	}
	return &analysis, nil
}
