package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptutils/jirabranch/internal/application"
	"github.com/promptutils/jirabranch/internal/domain/model"
	"github.com/promptutils/jirabranch/internal/domain/port/driven"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type issueServiceFixture struct {
	git   *mockGitInfo
	cache *mockIssueCache
	proj  *mockProjectStore
	creds *mockCredentialStore
	jira  *mockJiraClient
	svc   *application.IssueService
}

// newIssueFixture wires an IssueService over a registered project on an
// issue branch, with a Jira client that returns "Fix login bug" for ABC-42.
func newIssueFixture() *issueServiceFixture {
	f := &issueServiceFixture{
		git: &mockGitInfo{
			branch:   "issue/jira/ABC-42",
			topLevel: "/home/dev/src/widget",
		},
		cache: &mockIssueCache{entries: map[string]string{}},
		proj: &mockProjectStore{
			bindings: map[string]string{"/home/dev/src/widget": "acme"},
		},
		creds: &mockCredentialStore{
			creds: map[string]model.Credential{
				"acme": {Domain: "acme", Email: "dev@acme.example", APIKey: "token"},
			},
		},
		jira: &mockJiraClient{
			fetchSummary: func(_ context.Context, _ model.Credential, issueKey string) (string, error) {
				if issueKey == "ABC-42" {
					return "Fix login bug", nil
				}
				return "", driven.ErrIssueNotFound
			},
		},
	}
	f.svc = application.NewIssueService(f.git, f.cache, f.proj, f.creds, f.jira, quietLogger())
	return f
}

func TestIssueService_FetchesAndCachesOnMiss(t *testing.T) {
	f := newIssueFixture()

	summary, err := f.svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Fix login bug", summary)
	assert.Equal(t, 1, f.jira.fetchCalls)
	require.Len(t, f.cache.puts, 1)
	assert.Equal(t, cachePut{IssueKey: "ABC-42", Summary: "Fix login bug"}, f.cache.puts[0])
}

func TestIssueService_CacheHitSkipsFetch(t *testing.T) {
	f := newIssueFixture()
	f.cache.entries["ABC-42"] = "Fix login bug"

	summary, err := f.svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Fix login bug", summary)
	assert.Zero(t, f.jira.fetchCalls, "cache hit must not reach the network")
}

func TestIssueService_NonIssueBranchIsNeutral(t *testing.T) {
	f := newIssueFixture()
	f.git.branch = "main"

	_, err := f.svc.Summary(context.Background())

	require.ErrorIs(t, err, application.ErrNoIssue)
	assert.Zero(t, f.jira.fetchCalls)
}

func TestIssueService_OutsideRepoIsNeutral(t *testing.T) {
	f := newIssueFixture()
	f.git.branchErr = driven.ErrNotARepo

	_, err := f.svc.Summary(context.Background())

	require.ErrorIs(t, err, application.ErrNoIssue)
	assert.Zero(t, f.jira.fetchCalls)
}

func TestIssueService_DetachedHeadIsNeutral(t *testing.T) {
	f := newIssueFixture()
	f.git.branchErr = driven.ErrDetachedHead

	_, err := f.svc.Summary(context.Background())

	require.ErrorIs(t, err, application.ErrNoIssue)
	assert.Zero(t, f.jira.fetchCalls)
}

func TestIssueService_UnboundProjectFailsBeforeFetch(t *testing.T) {
	f := newIssueFixture()
	f.proj.bindings = map[string]string{}

	_, err := f.svc.Summary(context.Background())

	require.ErrorIs(t, err, driven.ErrNotFound)
	assert.Contains(t, err.Error(), "--register-project")
	assert.Zero(t, f.jira.fetchCalls, "missing binding must not reach the network")
}

func TestIssueService_MissingCredentialFailsBeforeFetch(t *testing.T) {
	f := newIssueFixture()
	f.creds.creds = map[string]model.Credential{}

	_, err := f.svc.Summary(context.Background())

	require.ErrorIs(t, err, driven.ErrNotFound)
	assert.Contains(t, err.Error(), "--register-secrets")
	assert.Zero(t, f.jira.fetchCalls, "missing credential must not reach the network")
}

func TestIssueService_FetchErrorPropagates(t *testing.T) {
	f := newIssueFixture()
	f.jira.fetchSummary = func(_ context.Context, _ model.Credential, _ string) (string, error) {
		return "", driven.ErrAuth
	}

	_, err := f.svc.Summary(context.Background())

	require.ErrorIs(t, err, driven.ErrAuth)
	assert.Empty(t, f.cache.puts, "failed fetch must not poison the cache")
}

func TestIssueService_CacheReadErrorFallsBackToFetch(t *testing.T) {
	f := newIssueFixture()
	f.cache.getErr = errors.New("cache file corrupt")

	summary, err := f.svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Fix login bug", summary)
	assert.Equal(t, 1, f.jira.fetchCalls)
}

func TestIssueService_CacheWriteErrorStillReturnsSummary(t *testing.T) {
	f := newIssueFixture()
	f.cache.putErr = errors.New("disk full")

	summary, err := f.svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Fix login bug", summary)
}
