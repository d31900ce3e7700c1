package models

import (
	"time"

	"github.com/google/uuid"
)

// WebhookCredential represents an API credential used by external
// content platforms to authenticate against the ingestion API
type WebhookCredential struct {
	ID         uuid.UUID  `json:"id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	APIKey     string     `json:"api_key"`
	IsActive   bool       `json:"is_active"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
