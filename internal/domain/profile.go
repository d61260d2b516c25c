// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// ProfileReview is the response document of a profile review.
type ProfileReview struct {
	ProfileData *ProfileData `json:"profileData"`
	Analysis    *Analysis    `json:"analysis"`
}

// ProfileData is the summary of a GitHub user handed to the reviewer model
// and returned to the client as-is.
type ProfileData struct {
	BasicInfo BasicInfo    `json:"basicInfo"`
	Stats     ProfileStats `json:"stats"`
}

// BasicInfo holds the public fields of a GitHub user.
type BasicInfo struct {
	Name        string    `json:"name"`
	Login       string    `json:"login"`
	Avatar      string    `json:"avatar"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	Company     string    `json:"company"`
	Blog        string    `json:"blog"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	PublicRepos int       `json:"publicRepos"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProfileStats aggregates a user's repositories and recent activity.
type ProfileStats struct {
	TotalStars         int             `json:"totalStars"`
	TopLanguages       []LanguageCount `json:"topLanguages"`
	RecentActivity     []ActivityEvent `json:"recentActivity"`
	Repositories       []RepoSummary   `json:"repositories"`
	StarStats          Distribution    `json:"starStats"`
	TotalContributions *int            `json:"totalContributions,omitempty"`
}

// LanguageCount is the number of repositories whose primary language is Language.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// ActivityEvent is a trimmed public GitHub event.
type ActivityEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Repo      string    `json:"repo"`
	CreatedAt time.Time `json:"createdAt"`
}

// RepoSummary is the per-repository entry of a profile.
type RepoSummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Language    string    `json:"language"`
	UpdatedAt   time.Time `json:"updatedAt"`
	URL         string    `json:"url"`
}

// Distribution summarises a series of counts.
type Distribution struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}
