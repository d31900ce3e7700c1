package services

import (
	"context"
	"errors"
	"testing"

	"github.com/alllin1/seo-blog-api/src/models"
	"github.com/alllin1/seo-blog-api/src/repositories/mock"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateAdminUser_Validation(t *testing.T) {
	repo := mock.NewAdminRepository()
	svc := NewAdminServiceWithRepo(repo)

	t.Run("rejects empty username", func(t *testing.T) {
		if _, err := svc.CreateAdminUser(context.Background(), "", "longenough"); err == nil {
			t.Error("expected error for empty username")
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		if _, err := svc.CreateAdminUser(context.Background(), "admin", "short"); err == nil {
			t.Error("expected error for short password")
		}
	})

	t.Run("hashes the password", func(t *testing.T) {
		admin, err := svc.CreateAdminUser(context.Background(), "admin", "correct-horse")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if admin.PasswordHash == "correct-horse" {
			t.Fatal("password stored in plaintext")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("correct-horse")); err != nil {
			t.Errorf("stored hash does not verify: %v", err)
		}
	})
}

func TestHasAdmins(t *testing.T) {
	repo := mock.NewAdminRepository()
	svc := NewAdminServiceWithRepo(repo)

	has, err := svc.HasAdmins(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if has {
		t.Error("expected no admins for an empty repository")
	}

	repo.CountFunc = func(ctx context.Context) (int, error) {
		return 2, nil
	}
	has, err = svc.HasAdmins(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !has {
		t.Error("expected admins to be reported")
	}

	repo.CountFunc = func(ctx context.Context) (int, error) {
		return 0, errors.New("connection refused")
	}
	if _, err := svc.HasAdmins(context.Background()); err == nil {
		t.Error("expected count errors to surface")
	}
}

func TestAuthenticateAdmin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	newService := func(active bool) (*AdminService, *mock.AdminRepository) {
		repo := mock.NewAdminRepository()
		repo.GetByUsernameFunc = func(ctx context.Context, username string) (*models.AdminUser, error) {
			if username != "admin" {
				return nil, nil
			}
			return &models.AdminUser{Username: "admin", PasswordHash: string(hash), IsActive: active}, nil
		}
		return NewAdminServiceWithRepo(repo), repo
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, repo := newService(true)
		admin, err := svc.AuthenticateAdmin(context.Background(), "admin", "correct-horse")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if admin.LastLogin == nil {
			t.Error("expected last login to be set")
		}
		if len(repo.Calls["UpdateLastLogin"]) != 1 {
			t.Errorf("expected one UpdateLastLogin call, got %d", len(repo.Calls["UpdateLastLogin"]))
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newService(true)
		if _, err := svc.AuthenticateAdmin(context.Background(), "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newService(true)
		if _, err := svc.AuthenticateAdmin(context.Background(), "ghost", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("inactive user", func(t *testing.T) {
		svc, _ := newService(false)
		if _, err := svc.AuthenticateAdmin(context.Background(), "admin", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("failed stamp does not fail login", func(t *testing.T) {
		svc, repo := newService(true)
		repo.UpdateLastLoginFunc = func(ctx context.Context, adminID uuid.UUID) error {
			return errors.New("write timeout")
		}
		if _, err := svc.AuthenticateAdmin(context.Background(), "admin", "correct-horse"); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}
