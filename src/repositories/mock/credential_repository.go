package mock

import (
	"context"

	"github.com/alllin1/seo-blog-api/src/models"
	"github.com/google/uuid"
)

// CredentialRepository is a mock implementation of repositories.CredentialRepository
type CredentialRepository struct {
	GetByAPIKeyFunc   func(ctx context.Context, apiKey string) (*models.WebhookCredential, error)
	TouchLastUsedFunc func(ctx context.Context, id uuid.UUID) error
	CreateFunc        func(ctx context.Context, cred *models.WebhookCredential) error
	ListFunc          func(ctx context.Context) ([]models.WebhookCredential, error)
	SetActiveFunc     func(ctx context.Context, id uuid.UUID, active bool) error
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error

	// Call tracking
	Calls map[string][]interface{}
}

// NewCredentialRepository creates a new mock credential repository
func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *CredentialRepository) GetByAPIKey(ctx context.Context, apiKey string) (*models.WebhookCredential, error) {
	m.Calls["GetByAPIKey"] = append(m.Calls["GetByAPIKey"], apiKey)
	if m.GetByAPIKeyFunc != nil {
		return m.GetByAPIKeyFunc(ctx, apiKey)
	}
	return nil, nil
}

func (m *CredentialRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	m.Calls["TouchLastUsed"] = append(m.Calls["TouchLastUsed"], id)
	if m.TouchLastUsedFunc != nil {
		return m.TouchLastUsedFunc(ctx, id)
	}
	return nil
}

func (m *CredentialRepository) Create(ctx context.Context, cred *models.WebhookCredential) error {
	m.Calls["Create"] = append(m.Calls["Create"], cred)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, cred)
	}
	return nil
}

func (m *CredentialRepository) List(ctx context.Context) ([]models.WebhookCredential, error) {
	m.Calls["List"] = append(m.Calls["List"], nil)
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *CredentialRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	m.Calls["SetActive"] = append(m.Calls["SetActive"], []interface{}{id, active})
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	return nil
}

func (m *CredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.Calls["Delete"] = append(m.Calls["Delete"], id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
