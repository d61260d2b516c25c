package domain

import (
	"regexp"
	"strings"
)

// DefaultBranch is used when a README request names no branch.
const DefaultBranch = "main"

var (
	loginPattern    = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)
	repoNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)
	branchPattern   = regexp.MustCompile(`^[A-Za-z0-9._/-]{1,255}$`)
)

// ValidateUsername trims and checks a GitHub login.
func ValidateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", &ValidationError{Message: "GitHub username is required"}
	}
	if !loginPattern.MatchString(username) {
		return "", &ValidationError{Message: "Invalid GitHub username: " + username}
	}
	return username, nil
}

// ValidateRepo trims and checks a repository owner and name.
func ValidateRepo(owner, name string) (string, string, error) {
	owner, name = strings.TrimSpace(owner), strings.TrimSpace(name)
	if owner == "" || name == "" {
		return "", "", &ValidationError{Message: "Repository owner and name are required"}
	}
	if !loginPattern.MatchString(owner) {
		return "", "", &ValidationError{Message: "Invalid repository owner: " + owner}
	}
	if !repoNamePattern.MatchString(name) || name == "." || name == ".." {
		return "", "", &ValidationError{Message: "Invalid repository name: " + name}
	}
	return owner, name, nil
}

// ValidateBranch trims a branch name, defaulting to DefaultBranch when empty.
func ValidateBranch(branch string) (string, error) {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return DefaultBranch, nil
	}
	if !branchPattern.MatchString(branch) || strings.Contains(branch, "..") ||
		strings.HasPrefix(branch, "/") || strings.HasSuffix(branch, "/") {
		return "", &ValidationError{Message: "Invalid branch name: " + branch}
	}
	return branch, nil
}
