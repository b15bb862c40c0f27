package driven

import (
	"context"
	"errors"

	"github.com/promptutils/jirabranch/internal/domain/model"
)

// Sentinel errors for Jira Cloud requests. Transport-level failures
// (connection refused, timeout) are returned wrapped rather than as
// sentinels; callers treat any non-sentinel error as a network failure.
var (
	// ErrAuth indicates the credentials were rejected (HTTP 401/403).
	ErrAuth = errors.New("jira authentication failed")

	// ErrIssueNotFound indicates the issue does not exist or the account
	// cannot see it (HTTP 404).
	ErrIssueNotFound = errors.New("jira issue not found")

	// ErrUnexpectedResponse indicates the response could not be parsed for
	// the expected field.
	ErrUnexpectedResponse = errors.New("unexpected jira response")
)

// JiraClient defines the driven port for Jira Cloud lookups. Each method
// performs exactly one request attempt; the caller decides whether to retry
// on a later invocation.
type JiraClient interface {
	// FetchSummary returns the summary field of the given issue, using the
	// credential's domain, email and API key.
	FetchSummary(ctx context.Context, cred model.Credential, issueKey string) (string, error)

	// LookupTenant validates the credentials against the site's tenant info
	// endpoint and returns the Atlassian cloud id. Used at registration time
	// so a bad API key is rejected before it is stored.
	LookupTenant(ctx context.Context, domain, email, apiKey string) (string, error)
}
