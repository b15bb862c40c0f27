package model

import (
	"errors"
	"regexp"
)

// ErrNoIssueBranch is returned by ParseBranchIssueKey when the branch name
// does not follow the issue/jira/<KEY> convention.
var ErrNoIssueBranch = errors.New("branch does not name a jira issue")

// issueBranchRegex matches branches of the form issue/jira/PROJECT-123,
// where the key is an uppercase alphanumeric project prefix, a hyphen, and
// an issue number.
var issueBranchRegex = regexp.MustCompile(`^issue/jira/([A-Z0-9]+-[0-9]+)$`)

// ParseBranchIssueKey extracts the Jira issue key from a git branch name.
// It is a pure function, total over all inputs: anything that doesn't match
// the issue/jira/<KEY> pattern (main, feature branches, detached-HEAD
// descriptions) returns ErrNoIssueBranch.
func ParseBranchIssueKey(branch string) (string, error) {
	m := issueBranchRegex.FindStringSubmatch(branch)
	if m == nil {
		return "", ErrNoIssueBranch
	}
	return m[1], nil
}
