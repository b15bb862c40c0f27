package application_test

import (
	"context"

	"github.com/promptutils/jirabranch/internal/domain/model"
	"github.com/promptutils/jirabranch/internal/domain/port/driven"
)

// --- Mock implementations ---

type mockGitInfo struct {
	branch      string
	branchErr   error
	topLevel    string
	topLevelErr error
}

func (m *mockGitInfo) CurrentBranch() (string, error) {
	return m.branch, m.branchErr
}

func (m *mockGitInfo) TopLevel() (string, error) {
	return m.topLevel, m.topLevelErr
}

type cachePut struct {
	IssueKey string
	Summary  string
}

type mockIssueCache struct {
	entries map[string]string
	getErr  error
	putErr  error
	puts    []cachePut
}

func (m *mockIssueCache) Get(_ context.Context, issueKey string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	summary, ok := m.entries[issueKey]
	return summary, ok, nil
}

func (m *mockIssueCache) Put(_ context.Context, issueKey, summary string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.puts = append(m.puts, cachePut{IssueKey: issueKey, Summary: summary})
	return nil
}

type mockProjectStore struct {
	bindings map[string]string
	putErr   error
}

func (m *mockProjectStore) Put(_ context.Context, projectID, domain string) error {
	if m.putErr != nil {
		return m.putErr
	}
	if m.bindings == nil {
		m.bindings = map[string]string{}
	}
	m.bindings[projectID] = domain
	return nil
}

func (m *mockProjectStore) Get(_ context.Context, projectID string) (string, error) {
	domain, ok := m.bindings[projectID]
	if !ok {
		return "", driven.ErrNotFound
	}
	return domain, nil
}

func (m *mockProjectStore) Delete(_ context.Context, projectID string) error {
	delete(m.bindings, projectID)
	return nil
}

type mockCredentialStore struct {
	creds  map[string]model.Credential
	putErr error
}

func (m *mockCredentialStore) Put(_ context.Context, cred model.Credential) error {
	if m.putErr != nil {
		return m.putErr
	}
	if m.creds == nil {
		m.creds = map[string]model.Credential{}
	}
	m.creds[cred.Domain] = cred
	return nil
}

func (m *mockCredentialStore) Get(_ context.Context, domain string) (model.Credential, error) {
	cred, ok := m.creds[domain]
	if !ok {
		return model.Credential{}, driven.ErrNotFound
	}
	return cred, nil
}

func (m *mockCredentialStore) Delete(_ context.Context, domain string) error {
	delete(m.creds, domain)
	return nil
}

type mockJiraClient struct {
	fetchSummary func(ctx context.Context, cred model.Credential, issueKey string) (string, error)
	lookupTenant func(ctx context.Context, domain, email, apiKey string) (string, error)
	fetchCalls   int
	tenantCalls  int
}

func (m *mockJiraClient) FetchSummary(ctx context.Context, cred model.Credential, issueKey string) (string, error) {
	m.fetchCalls++
	return m.fetchSummary(ctx, cred, issueKey)
}

func (m *mockJiraClient) LookupTenant(ctx context.Context, domain, email, apiKey string) (string, error) {
	m.tenantCalls++
	return m.lookupTenant(ctx, domain, email, apiKey)
}
