package driven

import "errors"

var (
	// ErrNotARepo indicates the working directory is not inside a git
	// working tree.
	ErrNotARepo = errors.New("not inside a git repository")

	// ErrDetachedHead indicates HEAD does not point at a branch, so there
	// is no branch name to inspect.
	ErrDetachedHead = errors.New("HEAD is detached")
)

// GitInfo defines the driven port for read-only git repository introspection.
type GitInfo interface {
	// CurrentBranch returns the short name of the branch HEAD points at.
	CurrentBranch() (string, error)

	// TopLevel returns the absolute path of the worktree root. This path is
	// the project identifier used by the ProjectStore.
	TopLevel() (string, error)
}
