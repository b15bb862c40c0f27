package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/promptutils/jirabranch/internal/domain/model"
	"github.com/promptutils/jirabranch/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port.
// When constructed with a 32-byte key, API keys are encrypted with
// AES-256-GCM before write and decrypted after read. With a nil key they are
// stored in the clear; the database file itself is always owner-only (0600).
type CredentialRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil disables at-rest encryption.
}

// NewCredentialRepo creates a new CredentialRepo. key must be 32 bytes for
// AES-256-GCM, or nil to store API keys unencrypted.
func NewCredentialRepo(db *DB, key []byte) *CredentialRepo {
	return &CredentialRepo{db: db, key: key}
}

// Put stores or replaces the credential for cred.Domain.
func (r *CredentialRepo) Put(ctx context.Context, cred model.Credential) error {
	apiKey := cred.APIKey
	if r.key != nil {
		encrypted, err := r.encrypt(apiKey)
		if err != nil {
			return fmt.Errorf("encrypt api key for %q: %w", cred.Domain, err)
		}
		apiKey = encrypted
	}

	const query = `INSERT OR REPLACE INTO credentials (domain, email, api_key, cloud_id, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.Writer.ExecContext(ctx, query,
		cred.Domain, cred.Email, apiKey, cred.CloudID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put credential %q: %w", cred.Domain, err)
	}
	return nil
}

// Get retrieves the credential registered for the given domain.
// Returns driven.ErrNotFound if the domain has never been registered.
func (r *CredentialRepo) Get(ctx context.Context, domain string) (model.Credential, error) {
	const query = `SELECT domain, email, api_key, cloud_id, updated_at FROM credentials WHERE domain = ?`

	var cred model.Credential
	var apiKey, updatedAt string
	err := r.db.Reader.QueryRowContext(ctx, query, domain).Scan(
		&cred.Domain, &cred.Email, &apiKey, &cred.CloudID, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Credential{}, fmt.Errorf("credential for domain %q: %w", domain, driven.ErrNotFound)
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("get credential %q: %w", domain, err)
	}

	if r.key != nil {
		apiKey, err = r.decrypt(apiKey)
		if err != nil {
			return model.Credential{}, fmt.Errorf("decrypt api key for %q: %w", domain, err)
		}
	}
	cred.APIKey = apiKey

	cred.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return model.Credential{}, fmt.Errorf("parse updated_at for credential %q: %w", domain, err)
	}

	return cred, nil
}

// Delete removes the credential for the given domain.
func (r *CredentialRepo) Delete(ctx context.Context, domain string) error {
	const query = `DELETE FROM credentials WHERE domain = ?`
	_, err := r.db.Writer.ExecContext(ctx, query, domain)
	if err != nil {
		return fmt.Errorf("delete credential %q: %w", domain, err)
	}
	return nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded
// string containing the nonce (12 bytes) prepended to the ciphertext.
func (r *CredentialRepo) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *CredentialRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}
