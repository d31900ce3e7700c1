package services

import (
	"context"
	"errors"
	"testing"

	"github.com/alllin1/seo-blog-api/src/models"
	"github.com/alllin1/seo-blog-api/src/repositories/mock"
	"github.com/google/uuid"
)

func TestValidateAPIKey(t *testing.T) {
	activeID := uuid.New()
	creds := map[string]*models.WebhookCredential{
		"active-key":   {ID: activeID, Name: "primary", APIKey: "active-key", IsActive: true},
		"inactive-key": {ID: uuid.New(), Name: "revoked", APIKey: "inactive-key", IsActive: false},
	}

	newService := func() (*CredentialService, *mock.CredentialRepository) {
		repo := mock.NewCredentialRepository()
		repo.GetByAPIKeyFunc = func(ctx context.Context, apiKey string) (*models.WebhookCredential, error) {
			return creds[apiKey], nil
		}
		return NewCredentialServiceWithRepo(repo), repo
	}

	t.Run("active key passes and is stamped", func(t *testing.T) {
		svc, repo := newService()
		if !svc.ValidateAPIKey(context.Background(), "active-key") {
			t.Fatal("expected active key to validate")
		}
		if len(repo.Calls["TouchLastUsed"]) != 1 {
			t.Fatalf("expected one TouchLastUsed call, got %d", len(repo.Calls["TouchLastUsed"]))
		}
		if got := repo.Calls["TouchLastUsed"][0].(uuid.UUID); got != activeID {
			t.Errorf("stamped wrong credential: %s", got)
		}
	})

	t.Run("inactive key fails", func(t *testing.T) {
		svc, repo := newService()
		if svc.ValidateAPIKey(context.Background(), "inactive-key") {
			t.Error("expected inactive key to fail")
		}
		if len(repo.Calls["TouchLastUsed"]) != 0 {
			t.Error("inactive key must not be stamped")
		}
	})

	t.Run("unknown key fails", func(t *testing.T) {
		svc, _ := newService()
		if svc.ValidateAPIKey(context.Background(), "no-such-key") {
			t.Error("expected unknown key to fail")
		}
	})

	t.Run("empty key fails without a lookup", func(t *testing.T) {
		svc, repo := newService()
		if svc.ValidateAPIKey(context.Background(), "") {
			t.Error("expected empty key to fail")
		}
		if len(repo.Calls["GetByAPIKey"]) != 0 {
			t.Error("empty key must not reach the repository")
		}
	})

	t.Run("lookup error fails closed", func(t *testing.T) {
		repo := mock.NewCredentialRepository()
		repo.GetByAPIKeyFunc = func(ctx context.Context, apiKey string) (*models.WebhookCredential, error) {
			return nil, errors.New("connection refused")
		}
		svc := NewCredentialServiceWithRepo(repo)
		if svc.ValidateAPIKey(context.Background(), "active-key") {
			t.Error("expected validation to fail when the lookup errors")
		}
	})

	t.Run("failed stamp does not fail auth", func(t *testing.T) {
		svc, repo := newService()
		repo.TouchLastUsedFunc = func(ctx context.Context, id uuid.UUID) error {
			return errors.New("write timeout")
		}
		if !svc.ValidateAPIKey(context.Background(), "active-key") {
			t.Error("expected auth to succeed despite a failed last_used_at stamp")
		}
	})
}

func TestCreateCredential(t *testing.T) {
	repo := mock.NewCredentialRepository()
	svc := NewCredentialServiceWithRepo(repo)

	cred, err := svc.CreateCredential(context.Background(), "admin-1", "zapier")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cred.Name != "zapier" || cred.UserID != "admin-1" {
		t.Errorf("unexpected credential fields: %+v", cred)
	}
	if !cred.IsActive {
		t.Error("new credentials must start active")
	}
	if len(cred.APIKey) != 64 {
		t.Errorf("expected a 64-char hex key, got %d chars", len(cred.APIKey))
	}

	second, err := svc.CreateCredential(context.Background(), "admin-1", "make")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second.APIKey == cred.APIKey {
		t.Error("expected distinct keys per credential")
	}
}

func TestSetCredentialActive_Forwarding(t *testing.T) {
	repo := mock.NewCredentialRepository()
	repo.SetActiveFunc = func(ctx context.Context, id uuid.UUID, active bool) error {
		return ErrCredentialNotFound
	}
	svc := NewCredentialServiceWithRepo(repo)

	err := svc.SetCredentialActive(context.Background(), uuid.New(), false)
	if !errors.Is(err, ErrCredentialNotFound) {
		t.Errorf("expected ErrCredentialNotFound, got %v", err)
	}
}
