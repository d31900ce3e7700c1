package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost represents a canonical blog post record
type BlogPost struct {
	ID               uuid.UUID              `json:"id"`
	Title            string                 `json:"title"`
	Slug             string                 `json:"slug"`
	Content          string                 `json:"content"`
	Excerpt          string                 `json:"excerpt,omitempty"`
	Author           string                 `json:"author,omitempty"`
	FeaturedImageURL string                 `json:"featured_image_url,omitempty"`
	Status           string                 `json:"status"` // draft, published or archived
	MetaDescription  string                 `json:"meta_description,omitempty"`
	SEOTitle         string                 `json:"seo_title,omitempty"`
	FocusKeyword     string                 `json:"focus_keyword,omitempty"`
	Keywords         []string               `json:"keywords"`
	CanonicalURL     string                 `json:"canonical_url,omitempty"`
	SEOScore         *int                   `json:"seo_score,omitempty"`
	SchemaMarkup     map[string]interface{} `json:"schema_markup"`
	OpenGraph        map[string]interface{} `json:"open_graph"`
	TwitterCard      map[string]interface{} `json:"twitter_card"`
	ExternalID       string                 `json:"external_id,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	PublishedAt      time.Time              `json:"published_at"`
}

// PostDraft is a normalized post payload before it is resolved against
// storage. It carries no identifier; the resolver assigns one on create.
type PostDraft struct {
	Title            string
	Slug             string
	Content          string
	Excerpt          string
	Author           string
	FeaturedImageURL string
	Status           string
	MetaDescription  string
	SEOTitle         string
	FocusKeyword     string
	Keywords         []string
	CanonicalURL     string
	SEOScore         *int
	SchemaMarkup     map[string]interface{}
	OpenGraph        map[string]interface{}
	TwitterCard      map[string]interface{}
	ExternalID       string
	PublishedAt      time.Time
}
