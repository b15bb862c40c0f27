package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/promptutils/jirabranch/internal/domain/model"
	"github.com/promptutils/jirabranch/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.IssueCache = (*IssueCacheRepo)(nil)

// IssueCacheRepo is the SQLite implementation of the IssueCache port.
// Expired rows are not deleted; they report as misses and get overwritten by
// the next successful fetch.
type IssueCacheRepo struct {
	db  *DB
	ttl time.Duration
}

// NewIssueCacheRepo creates a new IssueCacheRepo with the given time-to-live.
func NewIssueCacheRepo(db *DB, ttl time.Duration) *IssueCacheRepo {
	return &IssueCacheRepo{db: db, ttl: ttl}
}

// Get returns the cached summary for issueKey. ok is false on a miss,
// including when the stored entry is older than the TTL.
func (r *IssueCacheRepo) Get(ctx context.Context, issueKey string) (string, bool, error) {
	const query = `SELECT issue_key, summary, fetched_at FROM issue_cache WHERE issue_key = ?`

	var entry model.CachedIssue
	var fetchedAt string
	err := r.db.Reader.QueryRowContext(ctx, query, issueKey).Scan(&entry.IssueKey, &entry.Summary, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get cached issue %q: %w", issueKey, err)
	}

	entry.FetchedAt, err = parseTime(fetchedAt)
	if err != nil {
		return "", false, fmt.Errorf("parse fetched_at for issue %q: %w", issueKey, err)
	}

	if !entry.Fresh(r.ttl, time.Now().UTC()) {
		return "", false, nil
	}
	return entry.Summary, true, nil
}

// Put stores or overwrites the entry for issueKey with the current UTC time.
func (r *IssueCacheRepo) Put(ctx context.Context, issueKey, summary string) error {
	const query = `INSERT OR REPLACE INTO issue_cache (issue_key, summary, fetched_at) VALUES (?, ?, ?)`
	_, err := r.db.Writer.ExecContext(ctx, query, issueKey, summary, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put cached issue %q: %w", issueKey, err)
	}
	return nil
}
