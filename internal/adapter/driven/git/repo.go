// Package git implements the GitInfo port using go-git, so the tool never
// shells out to a git binary during prompt rendering.
package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"

	"github.com/promptutils/jirabranch/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitInfo = (*Repo)(nil)

// Repo inspects the git repository containing dir, walking up to find the
// .git directory the way `git` itself does.
type Repo struct {
	dir string
}

// NewRepo creates a Repo rooted at the given working directory.
func NewRepo(dir string) *Repo {
	return &Repo{dir: dir}
}

// CurrentBranch returns the short name of the branch HEAD points at.
// Returns driven.ErrNotARepo outside a working tree and
// driven.ErrDetachedHead when HEAD is not on a branch.
func (r *Repo) CurrentBranch() (string, error) {
	repo, err := r.open()
	if err != nil {
		return "", err
	}

	headRef, err := repo.Head()
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", driven.ErrNotARepo
		}
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}

	if !headRef.Name().IsBranch() {
		return "", driven.ErrDetachedHead
	}
	return headRef.Name().Short(), nil
}

// TopLevel returns the absolute path of the worktree root.
func (r *Repo) TopLevel() (string, error) {
	repo, err := r.open()
	if err != nil {
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, gogit.ErrIsBareRepository) {
			return "", driven.ErrNotARepo
		}
		return "", fmt.Errorf("resolve worktree: %w", err)
	}

	root, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return "", fmt.Errorf("resolve worktree root: %w", err)
	}
	return root, nil
}

func (r *Repo) open() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(r.dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return nil, driven.ErrNotARepo
	}
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return repo, nil
}
