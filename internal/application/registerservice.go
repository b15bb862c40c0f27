package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/promptutils/jirabranch/internal/domain/model"
	"github.com/promptutils/jirabranch/internal/domain/port/driven"
)

// RegisterService handles the interactive registration commands: storing a
// domain credential and binding the current project to a domain.
type RegisterService struct {
	creds    driven.CredentialStore
	projects driven.ProjectStore
	git      driven.GitInfo
	jira     driven.JiraClient
}

// NewRegisterService creates a new RegisterService with the required dependencies.
func NewRegisterService(
	creds driven.CredentialStore,
	projects driven.ProjectStore,
	git driven.GitInfo,
	jira driven.JiraClient,
) *RegisterService {
	return &RegisterService{
		creds:    creds,
		projects: projects,
		git:      git,
		jira:     jira,
	}
}

// RegisterSecrets validates the credentials against the site's tenant info
// endpoint and stores them for the domain, overwriting any prior entry.
// A rejected API key never reaches the store.
func (s *RegisterService) RegisterSecrets(ctx context.Context, domain, email, apiKey string) error {
	cloudID, err := s.jira.LookupTenant(ctx, domain, email, apiKey)
	if err != nil {
		if errors.Is(err, driven.ErrAuth) {
			return fmt.Errorf("jira rejected the credentials for %q: %w", domain, err)
		}
		return fmt.Errorf("verify credentials for %q: %w", domain, err)
	}

	cred := model.Credential{
		Domain:  domain,
		Email:   email,
		APIKey:  apiKey,
		CloudID: cloudID,
	}
	if err := s.creds.Put(ctx, cred); err != nil {
		return fmt.Errorf("store credentials for %q: %w", domain, err)
	}
	return nil
}

// RegisterProject binds the current git worktree to a domain. The domain
// must already have a registered credential, so --register-project fails
// fast instead of leaving a binding that can never fetch.
func (s *RegisterService) RegisterProject(ctx context.Context, domain string) error {
	projectID, err := s.git.TopLevel()
	if err != nil {
		if errors.Is(err, driven.ErrNotARepo) {
			return fmt.Errorf("--register-project must be run inside a git repository: %w", err)
		}
		return fmt.Errorf("resolve project: %w", err)
	}

	if _, err := s.creds.Get(ctx, domain); err != nil {
		if errors.Is(err, driven.ErrNotFound) {
			return fmt.Errorf("no credentials registered for domain %q, run --register-secrets first: %w", domain, err)
		}
		return fmt.Errorf("look up credential for %q: %w", domain, err)
	}

	if err := s.projects.Put(ctx, projectID, domain); err != nil {
		return fmt.Errorf("bind project %q to domain %q: %w", projectID, domain, err)
	}
	return nil
}
