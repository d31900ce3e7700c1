package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/alllin1/seo-blog-api/src/models"
	"github.com/alllin1/seo-blog-api/src/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// CredentialService handles webhook credential operations: API key
// validation for the ingestion endpoints and credential management for
// the admin surface.
type CredentialService struct {
	pool *pgxpool.Pool
	repo repositories.CredentialRepository
}

// NewCredentialService creates a new credential service
func NewCredentialService(pool *pgxpool.Pool) *CredentialService {
	return &CredentialService{pool: pool}
}

// NewCredentialServiceWithRepo creates a new credential service with repository (for testing)
func NewCredentialServiceWithRepo(repo repositories.CredentialRepository) *CredentialService {
	return &CredentialService{repo: repo}
}

// ValidateAPIKey checks whether a presented key matches an active stored
// credential. Every failure mode collapses to false; callers learn nothing
// about which check failed. On success the credential's last_used_at is
// stamped best-effort: a failed stamp is logged and does not fail auth.
func (cs *CredentialService) ValidateAPIKey(ctx context.Context, apiKey string) bool {
	if apiKey == "" {
		return false
	}

	// Use repository if available (for testing)
	if cs.repo != nil {
		cred, err := cs.repo.GetByAPIKey(ctx, apiKey)
		if err != nil || cred == nil || !cred.IsActive {
			return false
		}
		if err := cs.repo.TouchLastUsed(ctx, cred.ID); err != nil {
			log.Warn().Err(err).Str("credential_id", cred.ID.String()).Msg("failed to stamp last_used_at")
		}
		return true
	}

	var id uuid.UUID
	err := cs.pool.QueryRow(ctx,
		"SELECT id FROM webhook_credentials WHERE api_key = $1 AND is_active = true",
		apiKey,
	).Scan(&id)
	if err != nil {
		return false
	}

	if _, err := cs.pool.Exec(ctx,
		"UPDATE webhook_credentials SET last_used_at = NOW() WHERE id = $1", id,
	); err != nil {
		log.Warn().Err(err).Str("credential_id", id.String()).Msg("failed to stamp last_used_at")
	}

	return true
}

// generateAPIKey produces a 256-bit key encoded as 64 hex characters
func generateAPIKey() (string, error) {
	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return hex.EncodeToString(keyBytes), nil
}

// CreateCredential generates a fresh key and stores a new credential.
// The key is generated exactly once; revocation is by deactivation or
// deletion, never rotation in place.
func (cs *CredentialService) CreateCredential(ctx context.Context, userID, name string) (*models.WebhookCredential, error) {
	apiKey, err := generateAPIKey()
	if err != nil {
		return nil, err
	}

	cred := &models.WebhookCredential{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		APIKey:    apiKey,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if cs.repo != nil {
		if err := cs.repo.Create(ctx, cred); err != nil {
			return nil, fmt.Errorf("failed to create credential: %w", err)
		}
		return cred, nil
	}

	err = cs.pool.QueryRow(ctx, `
		INSERT INTO webhook_credentials (id, user_id, name, api_key, is_active, created_at)
		VALUES ($1, $2, $3, $4, true, $5)
		RETURNING id, user_id, name, api_key, is_active, last_used_at, created_at
	`, cred.ID, userID, name, apiKey, cred.CreatedAt).Scan(
		&cred.ID, &cred.UserID, &cred.Name, &cred.APIKey, &cred.IsActive, &cred.LastUsedAt, &cred.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	return cred, nil
}

// ListCredentials returns all credentials, newest first
func (cs *CredentialService) ListCredentials(ctx context.Context) ([]models.WebhookCredential, error) {
	if cs.repo != nil {
		return cs.repo.List(ctx)
	}

	rows, err := cs.pool.Query(ctx, `
		SELECT id, user_id, name, api_key, is_active, last_used_at, created_at
		FROM webhook_credentials
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query credentials: %w", err)
	}
	defer rows.Close()

	var creds []models.WebhookCredential
	for rows.Next() {
		var c models.WebhookCredential
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.APIKey, &c.IsActive, &c.LastUsedAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		creds = append(creds, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credentials: %w", err)
	}

	return creds, nil
}

// SetCredentialActive toggles a credential's active flag
func (cs *CredentialService) SetCredentialActive(ctx context.Context, id uuid.UUID, active bool) error {
	if cs.repo != nil {
		return cs.repo.SetActive(ctx, id, active)
	}

	result, err := cs.pool.Exec(ctx,
		"UPDATE webhook_credentials SET is_active = $1 WHERE id = $2",
		active, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update credential status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCredentialNotFound
	}
	return nil
}

// DeleteCredential removes a credential permanently
func (cs *CredentialService) DeleteCredential(ctx context.Context, id uuid.UUID) error {
	if cs.repo != nil {
		return cs.repo.Delete(ctx, id)
	}

	result, err := cs.pool.Exec(ctx,
		"DELETE FROM webhook_credentials WHERE id = $1", id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCredentialNotFound
	}
	return nil
}
