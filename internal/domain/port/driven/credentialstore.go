package driven

import (
	"context"
	"errors"

	"github.com/promptutils/jirabranch/internal/domain/model"
)

// ErrNotFound is returned by store lookups when no record exists for the
// given key. Shared by CredentialStore and ProjectStore.
var ErrNotFound = errors.New("record not found")

// CredentialStore defines the driven port for per-domain Jira credential
// persistence. The adapter layer may encrypt the API key at rest; this
// interface operates on plaintext values at the domain boundary.
type CredentialStore interface {
	// Put stores or replaces the credential for cred.Domain.
	Put(ctx context.Context, cred model.Credential) error

	// Get retrieves the credential registered for the given domain.
	// Returns ErrNotFound if the domain has never been registered.
	Get(ctx context.Context, domain string) (model.Credential, error)

	// Delete removes the credential for the given domain. Deleting an
	// unregistered domain is not an error.
	Delete(ctx context.Context, domain string) error
}
