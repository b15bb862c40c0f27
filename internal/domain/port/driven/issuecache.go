package driven

import "context"

// IssueCache defines the driven port for the issue-summary cache. Freshness
// is time-based only; there is no size bound or eviction beyond overwrite.
type IssueCache interface {
	// Get returns the cached summary for issueKey. ok is false on a miss,
	// including when a record exists on disk but its TTL has elapsed.
	Get(ctx context.Context, issueKey string) (summary string, ok bool, err error)

	// Put stores or overwrites the entry for issueKey with the current time.
	Put(ctx context.Context, issueKey, summary string) error
}
