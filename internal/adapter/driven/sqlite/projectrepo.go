package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/promptutils/jirabranch/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ProjectStore = (*ProjectRepo)(nil)

// ProjectRepo is the SQLite implementation of the ProjectStore port.
type ProjectRepo struct {
	db *DB
}

// NewProjectRepo creates a new ProjectRepo.
func NewProjectRepo(db *DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Put binds projectID to domain, replacing any prior binding.
func (r *ProjectRepo) Put(ctx context.Context, projectID, domain string) error {
	const query = `INSERT OR REPLACE INTO project_bindings (project_id, domain, updated_at) VALUES (?, ?, ?)`
	_, err := r.db.Writer.ExecContext(ctx, query, projectID, domain, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put project binding %q: %w", projectID, err)
	}
	return nil
}

// Get returns the domain bound to projectID.
// Returns driven.ErrNotFound if the project has no registered domain.
func (r *ProjectRepo) Get(ctx context.Context, projectID string) (string, error) {
	const query = `SELECT domain FROM project_bindings WHERE project_id = ?`

	var domain string
	err := r.db.Reader.QueryRowContext(ctx, query, projectID).Scan(&domain)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("binding for project %q: %w", projectID, driven.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get project binding %q: %w", projectID, err)
	}
	return domain, nil
}

// Delete removes the binding for projectID.
func (r *ProjectRepo) Delete(ctx context.Context, projectID string) error {
	const query = `DELETE FROM project_bindings WHERE project_id = ?`
	_, err := r.db.Writer.ExecContext(ctx, query, projectID)
	if err != nil {
		return fmt.Errorf("delete project binding %q: %w", projectID, err)
	}
	return nil
}
