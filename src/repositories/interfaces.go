package repositories

import (
	"context"

	"github.com/alllin1/seo-blog-api/src/models"
	"github.com/google/uuid"
)

// PostRepository defines the interface for blog post data access
type PostRepository interface {
	// Lookups
	GetByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)

	// Upsert resolves create-vs-update by external id. Returns the stored
	// post and whether a new row was created.
	Upsert(ctx context.Context, draft *models.PostDraft) (*models.BlogPost, bool, error)

	// Update applies a draft as a full-field overwrite onto an existing post
	Update(ctx context.Context, id uuid.UUID, draft *models.PostDraft) (*models.BlogPost, error)

	// List returns a page of posts ordered by published_at DESC, optionally
	// filtered by status, plus the total matching count
	List(ctx context.Context, status string, limit, offset int) ([]models.BlogPost, int, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

// CredentialRepository defines the interface for webhook credential data access
type CredentialRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*models.WebhookCredential, error)
	TouchLastUsed(ctx context.Context, id uuid.UUID) error

	Create(ctx context.Context, cred *models.WebhookCredential) error
	List(ctx context.Context) ([]models.WebhookCredential, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdminRepository defines the interface for admin data access
type AdminRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	UpdateLastLogin(ctx context.Context, adminID uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
