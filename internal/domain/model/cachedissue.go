package model

import "time"

// CachedIssue is one issue-summary cache record. An entry is fresh while
// now - FetchedAt < ttl; stale entries stay on disk until overwritten.
type CachedIssue struct {
	IssueKey  string
	Summary   string
	FetchedAt time.Time
}

// Fresh reports whether the entry is still within its time-to-live at now.
func (c CachedIssue) Fresh(ttl time.Duration, now time.Time) bool {
	return now.Sub(c.FetchedAt) < ttl
}
