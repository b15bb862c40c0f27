package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCachedIssue_Fresh(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	ttl := 6 * time.Hour

	tests := []struct {
		name      string
		fetchedAt time.Time
		want      bool
	}{
		{name: "just fetched", fetchedAt: now, want: true},
		{name: "within ttl", fetchedAt: now.Add(-5 * time.Hour), want: true},
		{name: "exactly at ttl boundary is stale", fetchedAt: now.Add(-6 * time.Hour), want: false},
		{name: "past ttl", fetchedAt: now.Add(-24 * time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := CachedIssue{IssueKey: "ABC-1", Summary: "x", FetchedAt: tt.fetchedAt}
			assert.Equal(t, tt.want, entry.Fresh(ttl, now))
		})
	}
}
