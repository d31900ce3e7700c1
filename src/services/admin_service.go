package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alllin1/seo-blog-api/src/models"
	"github.com/alllin1/seo-blog-api/src/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AdminService handles admin user operations
type AdminService struct {
	pool *pgxpool.Pool
	repo repositories.AdminRepository
}

// NewAdminService creates a new admin service
func NewAdminService(pool *pgxpool.Pool) *AdminService {
	return &AdminService{pool: pool}
}

// NewAdminServiceWithRepo creates a new admin service with repository (for testing)
func NewAdminServiceWithRepo(repo repositories.AdminRepository) *AdminService {
	return &AdminService{repo: repo}
}

// CreateAdminUser creates a new admin user with hashed password
func (as *AdminService) CreateAdminUser(ctx context.Context, username, password string) (*models.AdminUser, error) {
	if len(username) < 1 || len(username) > 255 {
		return nil, errors.New("username must be between 1 and 255 characters")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.AdminUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		IsActive:     true,
	}

	// Use repository if available (for testing)
	if as.repo != nil {
		if err := as.repo.Create(ctx, admin); err != nil {
			return nil, fmt.Errorf("failed to create admin user: %w", err)
		}
		return admin, nil
	}

	err = as.pool.QueryRow(ctx, `
		INSERT INTO admin_users (id, username, password_hash, created_at, is_active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id, username, password_hash, created_at, last_login, is_active
	`, admin.ID, username, string(hash), admin.CreatedAt).Scan(
		&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt, &admin.LastLogin, &admin.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	return admin, nil
}

// HasAdmins checks if any admin users exist in the database
func (as *AdminService) HasAdmins(ctx context.Context) (bool, error) {
	// Use repository if available (for testing)
	if as.repo != nil {
		count, err := as.repo.Count(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to check admin users: %w", err)
		}
		return count > 0, nil
	}

	var count int
	err := as.pool.QueryRow(ctx, "SELECT COUNT(*) FROM admin_users").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check admin users: %w", err)
	}
	return count > 0, nil
}

// AuthenticateAdmin verifies username and password
func (as *AdminService) AuthenticateAdmin(ctx context.Context, username, password string) (*models.AdminUser, error) {
	var admin *models.AdminUser
	var err error

	// Use repository if available (for testing)
	if as.repo != nil {
		admin, err = as.repo.GetByUsername(ctx, username)
		if err != nil || admin == nil || !admin.IsActive {
			return nil, ErrInvalidCredentials
		}
	} else {
		admin = &models.AdminUser{}
		err = as.pool.QueryRow(ctx, `
			SELECT id, username, password_hash, created_at, last_login, is_active
			FROM admin_users
			WHERE username = $1 AND is_active = true
		`, username).Scan(
			&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt, &admin.LastLogin, &admin.IsActive,
		)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best-effort last_login stamp
	now := time.Now()
	if as.repo != nil {
		err = as.repo.UpdateLastLogin(ctx, admin.ID)
	} else {
		_, err = as.pool.Exec(ctx, `UPDATE admin_users SET last_login = $1 WHERE id = $2`, now, admin.ID)
	}
	if err != nil {
		log.Warn().Err(err).Str("username", admin.Username).Msg("failed to update last_login")
	}

	admin.LastLogin = &now
	return admin, nil
}
