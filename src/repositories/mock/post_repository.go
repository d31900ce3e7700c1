package mock

import (
	"context"

	"github.com/alllin1/seo-blog-api/src/models"
	"github.com/google/uuid"
)

// PostRepository is a mock implementation of repositories.PostRepository
type PostRepository struct {
	// Function stubs that can be overridden in tests
	GetByIDFunc   func(ctx context.Context, id uuid.UUID) (*models.BlogPost, error)
	GetBySlugFunc func(ctx context.Context, slug string) (*models.BlogPost, error)
	UpsertFunc    func(ctx context.Context, draft *models.PostDraft) (*models.BlogPost, bool, error)
	UpdateFunc    func(ctx context.Context, id uuid.UUID, draft *models.PostDraft) (*models.BlogPost, error)
	ListFunc      func(ctx context.Context, status string, limit, offset int) ([]models.BlogPost, int, error)
	DeleteFunc    func(ctx context.Context, id uuid.UUID) error

	// Call tracking
	Calls map[string][]interface{}
}

// NewPostRepository creates a new mock post repository
func NewPostRepository() *PostRepository {
	return &PostRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	m.Calls["GetByID"] = append(m.Calls["GetByID"], id)
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *PostRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	m.Calls["GetBySlug"] = append(m.Calls["GetBySlug"], slug)
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *PostRepository) Upsert(ctx context.Context, draft *models.PostDraft) (*models.BlogPost, bool, error) {
	m.Calls["Upsert"] = append(m.Calls["Upsert"], draft)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, draft)
	}
	return nil, false, nil
}

func (m *PostRepository) Update(ctx context.Context, id uuid.UUID, draft *models.PostDraft) (*models.BlogPost, error) {
	m.Calls["Update"] = append(m.Calls["Update"], []interface{}{id, draft})
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, draft)
	}
	return nil, nil
}

func (m *PostRepository) List(ctx context.Context, status string, limit, offset int) ([]models.BlogPost, int, error) {
	m.Calls["List"] = append(m.Calls["List"], []interface{}{status, limit, offset})
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status, limit, offset)
	}
	return nil, 0, nil
}

func (m *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.Calls["Delete"] = append(m.Calls["Delete"], id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
