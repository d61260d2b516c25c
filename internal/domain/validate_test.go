package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    string
		expectedErr string
	}{
		{name: "plain login", input: "octocat", expected: "octocat"},
		{name: "surrounding spaces are trimmed", input: "  octo-cat ", expected: "octo-cat"},
		{name: "empty", input: "", expectedErr: "GitHub username is required"},
		{name: "blank", input: "   ", expectedErr: "GitHub username is required"},
		{name: "path characters", input: "octocat/repos", expectedErr: "Invalid GitHub username"},
		{name: "leading hyphen", input: "-octocat", expectedErr: "Invalid GitHub username"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateUsername(tc.input)
			if tc.expectedErr != "" {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Contains(t, vErr.Message, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestValidateRepo(t *testing.T) {
	owner, name, err := ValidateRepo(" facebook ", "react.js")
	require.NoError(t, err)
	assert.Equal(t, "facebook", owner)
	assert.Equal(t, "react.js", name)

	_, _, err = ValidateRepo("facebook", "")
	assert.EqualError(t, err, "Repository owner and name are required")

	_, _, err = ValidateRepo("", "react")
	assert.EqualError(t, err, "Repository owner and name are required")

	_, _, err = ValidateRepo("facebook", "..")
	assert.ErrorContains(t, err, "Invalid repository name")

	_, _, err = ValidateRepo("face book", "react")
	assert.ErrorContains(t, err, "Invalid repository owner")
}

func TestValidateBranch(t *testing.T) {
	branch, err := ValidateBranch("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBranch, branch)

	branch, err = ValidateBranch("release/1.2")
	require.NoError(t, err)
	assert.Equal(t, "release/1.2", branch)

	for _, bad := range []string{"../etc", "feature/", "/main", "has space"} {
		_, err := ValidateBranch(bad)
		assert.Error(t, err, bad)
	}
}
