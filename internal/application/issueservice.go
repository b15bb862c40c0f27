package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/promptutils/jirabranch/internal/domain/model"
	"github.com/promptutils/jirabranch/internal/domain/port/driven"
)

// ErrNoIssue is returned by Summary when the current context simply has no
// issue to show: not in a git repository, detached HEAD, or a branch that
// doesn't follow the issue/jira/<KEY> convention. Callers print nothing and
// exit zero so an unrecognized branch never breaks prompt rendering.
var ErrNoIssue = errors.New("no jira issue for current branch")

// IssueService resolves the current git branch to a Jira issue summary,
// serving from the cache when fresh and fetching + caching on a miss.
// It depends only on port interfaces.
type IssueService struct {
	git      driven.GitInfo
	cache    driven.IssueCache
	projects driven.ProjectStore
	creds    driven.CredentialStore
	jira     driven.JiraClient
	logger   *slog.Logger
}

// NewIssueService creates a new IssueService with the required dependencies.
func NewIssueService(
	git driven.GitInfo,
	cache driven.IssueCache,
	projects driven.ProjectStore,
	creds driven.CredentialStore,
	jira driven.JiraClient,
	logger *slog.Logger,
) *IssueService {
	return &IssueService{
		git:      git,
		cache:    cache,
		projects: projects,
		creds:    creds,
		jira:     jira,
		logger:   logger,
	}
}

// Summary returns the summary of the issue named by the current branch.
//
// Branch resolution failures (no repo, detached HEAD, non-issue branch)
// return ErrNoIssue without touching the network. A fresh cache entry is
// returned as-is. On a miss, the project binding and domain credential are
// resolved before a single fetch; missing registration surfaces as a
// wrapped driven.ErrNotFound so the caller can print a short diagnostic.
func (s *IssueService) Summary(ctx context.Context) (string, error) {
	branch, err := s.git.CurrentBranch()
	if err != nil {
		if errors.Is(err, driven.ErrNotARepo) || errors.Is(err, driven.ErrDetachedHead) {
			return "", ErrNoIssue
		}
		return "", fmt.Errorf("read current branch: %w", err)
	}

	issueKey, err := model.ParseBranchIssueKey(branch)
	if err != nil {
		return "", ErrNoIssue
	}

	// A cache read failure is treated as a miss: a corrupt cache must not
	// take the prompt down with it.
	summary, ok, err := s.cache.Get(ctx, issueKey)
	if err != nil {
		s.logger.Warn("issue cache read failed", "issue_key", issueKey, "error", err)
	} else if ok {
		return summary, nil
	}

	cred, err := s.resolveCredential(ctx)
	if err != nil {
		return "", err
	}

	summary, err = s.jira.FetchSummary(ctx, cred, issueKey)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", issueKey, err)
	}

	if err := s.cache.Put(ctx, issueKey, summary); err != nil {
		// The summary is already in hand; losing the cache write only costs
		// the next render a fetch.
		s.logger.Warn("issue cache write failed", "issue_key", issueKey, "error", err)
	}

	return summary, nil
}

// resolveCredential maps the current worktree to its registered domain and
// that domain to its credential.
func (s *IssueService) resolveCredential(ctx context.Context) (model.Credential, error) {
	projectID, err := s.git.TopLevel()
	if err != nil {
		return model.Credential{}, fmt.Errorf("resolve project: %w", err)
	}

	domain, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, driven.ErrNotFound) {
			return model.Credential{}, fmt.Errorf("no jira domain registered for this project (run --register-project): %w", err)
		}
		return model.Credential{}, fmt.Errorf("look up project binding: %w", err)
	}

	cred, err := s.creds.Get(ctx, domain)
	if err != nil {
		if errors.Is(err, driven.ErrNotFound) {
			return model.Credential{}, fmt.Errorf("no credentials registered for domain %q (run --register-secrets): %w", domain, err)
		}
		return model.Credential{}, fmt.Errorf("look up credential: %w", err)
	}

	return cred, nil
}
