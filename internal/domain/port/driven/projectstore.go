package driven

import "context"

// ProjectStore defines the driven port for project→domain bindings. The
// project id is the git worktree root path; it is derived by the GitInfo
// adapter and passed in, never discovered here.
type ProjectStore interface {
	// Put binds projectID to domain, replacing any prior binding.
	Put(ctx context.Context, projectID, domain string) error

	// Get returns the domain bound to projectID.
	// Returns ErrNotFound if the project has no registered domain.
	Get(ctx context.Context, projectID string) (string, error)

	// Delete removes the binding for projectID. Deleting an unbound
	// project is not an error.
	Delete(ctx context.Context, projectID string) error
}
