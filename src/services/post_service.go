package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/alllin1/seo-blog-api/src/models"
	"github.com/alllin1/seo-blog-api/src/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uuidPattern decides whether a path segment is an id lookup or a slug lookup
var uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Upsert actions returned to callers
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// UpsertResult describes the outcome of a create-or-update submission
type UpsertResult struct {
	Action           string
	PostID           uuid.UUID
	ExternalID       string
	URL              string
	FeaturedImageURL string
}

// PostService resolves normalized drafts against stored posts
type PostService struct {
	pool         *pgxpool.Pool
	repo         repositories.PostRepository
	images       *ImageService
	blogBasePath string
}

// NewPostService creates a new post service
func NewPostService(pool *pgxpool.Pool, images *ImageService, blogBasePath string) *PostService {
	return &PostService{pool: pool, images: images, blogBasePath: blogBasePath}
}

// NewPostServiceWithRepo creates a new post service with repository (for testing)
func NewPostServiceWithRepo(repo repositories.PostRepository, images *ImageService, blogBasePath string) *PostService {
	return &PostService{repo: repo, images: images, blogBasePath: blogBasePath}
}

// postColumns is the full column list selected for a BlogPost row
const postColumns = `id, title, slug, content, COALESCE(excerpt, ''), COALESCE(author, ''),
	COALESCE(featured_image_url, ''), status, COALESCE(meta_description, ''), COALESCE(seo_title, ''),
	COALESCE(focus_keyword, ''), keywords, COALESCE(canonical_url, ''), seo_score,
	schema_markup, open_graph, twitter_card, COALESCE(external_id, ''),
	created_at, updated_at, published_at`

func scanPost(row pgx.Row) (*models.BlogPost, error) {
	var p models.BlogPost
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Author,
		&p.FeaturedImageURL, &p.Status, &p.MetaDescription, &p.SEOTitle,
		&p.FocusKeyword, &p.Keywords, &p.CanonicalURL, &p.SEOScore,
		&p.SchemaMarkup, &p.OpenGraph, &p.TwitterCard, &p.ExternalID,
		&p.CreatedAt, &p.UpdatedAt, &p.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateOrUpdate resolves a normalized draft by external identifier.
// A missing external id gets a generated one, so idempotent retries are
// only possible when the caller supplies its own. The featured image is
// persisted before the write using the external id as the content key.
// The write itself is a single conflict-resolving upsert; the unique
// constraint on external_id is what prevents concurrent duplicate creation.
func (ps *PostService) CreateOrUpdate(ctx context.Context, draft *models.PostDraft) (*UpsertResult, error) {
	if draft.ExternalID == "" {
		draft.ExternalID = uuid.New().String()
	}

	if draft.FeaturedImageURL != "" && ps.images != nil {
		draft.FeaturedImageURL = ps.images.PersistFeaturedImage(ctx, draft.FeaturedImageURL, draft.ExternalID)
	}

	post, created, err := ps.upsert(ctx, draft)
	if err != nil {
		return nil, err
	}

	action := ActionUpdated
	if created {
		action = ActionCreated
	}

	return &UpsertResult{
		Action:           action,
		PostID:           post.ID,
		ExternalID:       post.ExternalID,
		URL:              ps.blogBasePath + "/" + post.Slug,
		FeaturedImageURL: post.FeaturedImageURL,
	}, nil
}

func (ps *PostService) upsert(ctx context.Context, draft *models.PostDraft) (*models.BlogPost, bool, error) {
	// Use repository if available (for testing)
	if ps.repo != nil {
		post, created, err := ps.repo.Upsert(ctx, draft)
		if err != nil {
			return nil, false, fmt.Errorf("failed to upsert post: %w", err)
		}
		return post, created, nil
	}

	// Single atomic insert-or-update; xmax = 0 distinguishes a fresh row
	// from a conflict-updated one.
	row := ps.pool.QueryRow(ctx, `
		INSERT INTO blog_posts (
			title, slug, content, excerpt, author, featured_image_url, status,
			meta_description, seo_title, focus_keyword, keywords, canonical_url,
			seo_score, schema_markup, open_graph, twitter_card, external_id, published_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (external_id) WHERE external_id IS NOT NULL DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			content = EXCLUDED.content,
			excerpt = EXCLUDED.excerpt,
			author = EXCLUDED.author,
			featured_image_url = EXCLUDED.featured_image_url,
			status = EXCLUDED.status,
			meta_description = EXCLUDED.meta_description,
			seo_title = EXCLUDED.seo_title,
			focus_keyword = EXCLUDED.focus_keyword,
			keywords = EXCLUDED.keywords,
			canonical_url = EXCLUDED.canonical_url,
			seo_score = EXCLUDED.seo_score,
			schema_markup = EXCLUDED.schema_markup,
			open_graph = EXCLUDED.open_graph,
			twitter_card = EXCLUDED.twitter_card,
			published_at = EXCLUDED.published_at,
			updated_at = NOW()
		RETURNING `+postColumns+`, (xmax = 0) AS created
	`,
		draft.Title, draft.Slug, draft.Content, draft.Excerpt, draft.Author,
		draft.FeaturedImageURL, draft.Status, draft.MetaDescription, draft.SEOTitle,
		draft.FocusKeyword, draft.Keywords, draft.CanonicalURL, draft.SEOScore,
		draft.SchemaMarkup, draft.OpenGraph, draft.TwitterCard, draft.ExternalID,
		draft.PublishedAt,
	)

	var p models.BlogPost
	var created bool
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Author,
		&p.FeaturedImageURL, &p.Status, &p.MetaDescription, &p.SEOTitle,
		&p.FocusKeyword, &p.Keywords, &p.CanonicalURL, &p.SEOScore,
		&p.SchemaMarkup, &p.OpenGraph, &p.TwitterCard, &p.ExternalID,
		&p.CreatedAt, &p.UpdatedAt, &p.PublishedAt, &created,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert post: %w", err)
	}
	return &p, created, nil
}

// GetByIDOrSlug looks a post up by id when the key matches the UUID
// textual pattern, by slug otherwise
func (ps *PostService) GetByIDOrSlug(ctx context.Context, key string) (*models.BlogPost, error) {
	// Use repository if available (for testing)
	if ps.repo != nil {
		var post *models.BlogPost
		var err error
		if uuidPattern.MatchString(key) {
			post, err = ps.repo.GetByID(ctx, uuid.MustParse(key))
		} else {
			post, err = ps.repo.GetBySlug(ctx, key)
		}
		if err != nil || post == nil {
			return nil, ErrPostNotFound
		}
		return post, nil
	}

	var row pgx.Row
	if uuidPattern.MatchString(key) {
		row = ps.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, key)
	} else {
		row = ps.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE slug = $1 LIMIT 1`, key)
	}

	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// ListPosts returns a page of posts ordered by published_at DESC, plus the
// total matching count
func (ps *PostService) ListPosts(ctx context.Context, status string, page, limit int) ([]models.BlogPost, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	// Use repository if available (for testing)
	if ps.repo != nil {
		return ps.repo.List(ctx, status, limit, offset)
	}

	var total int
	var err error
	if status != "" {
		err = ps.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blog_posts WHERE status = $1`, status).Scan(&total)
	} else {
		err = ps.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&total)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var rows pgx.Rows
	if status != "" {
		rows, err = ps.pool.Query(ctx,
			`SELECT `+postColumns+` FROM blog_posts WHERE status = $1 ORDER BY published_at DESC LIMIT $2 OFFSET $3`,
			status, limit, offset,
		)
	} else {
		rows, err = ps.pool.Query(ctx,
			`SELECT `+postColumns+` FROM blog_posts ORDER BY published_at DESC LIMIT $1 OFFSET $2`,
			limit, offset,
		)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *post)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, total, nil
}

// UpdateByKey locates a post by id-or-slug and applies the draft as a
// full-field overwrite. A new featured image is persisted first; the
// content key falls back from the draft's external id to the stored one to
// the post id. The stored external id survives when the draft has none.
func (ps *PostService) UpdateByKey(ctx context.Context, key string, draft *models.PostDraft) (*models.BlogPost, error) {
	existing, err := ps.GetByIDOrSlug(ctx, key)
	if err != nil {
		return nil, err
	}

	if draft.FeaturedImageURL != "" && ps.images != nil {
		contentID := draft.ExternalID
		if contentID == "" {
			contentID = existing.ExternalID
		}
		if contentID == "" {
			contentID = existing.ID.String()
		}
		draft.FeaturedImageURL = ps.images.PersistFeaturedImage(ctx, draft.FeaturedImageURL, contentID)
	}

	if draft.ExternalID == "" {
		draft.ExternalID = existing.ExternalID
	}

	// Use repository if available (for testing)
	if ps.repo != nil {
		post, err := ps.repo.Update(ctx, existing.ID, draft)
		if err != nil {
			return nil, fmt.Errorf("failed to update post: %w", err)
		}
		return post, nil
	}

	row := ps.pool.QueryRow(ctx, `
		UPDATE blog_posts SET
			title = $2, slug = $3, content = $4, excerpt = $5, author = $6,
			featured_image_url = $7, status = $8, meta_description = $9,
			seo_title = $10, focus_keyword = $11, keywords = $12,
			canonical_url = $13, seo_score = $14, schema_markup = $15,
			open_graph = $16, twitter_card = $17, external_id = NULLIF($18, ''),
			published_at = $19, updated_at = NOW()
		WHERE id = $1
		RETURNING `+postColumns,
		existing.ID, draft.Title, draft.Slug, draft.Content, draft.Excerpt,
		draft.Author, draft.FeaturedImageURL, draft.Status, draft.MetaDescription,
		draft.SEOTitle, draft.FocusKeyword, draft.Keywords, draft.CanonicalURL,
		draft.SEOScore, draft.SchemaMarkup, draft.OpenGraph, draft.TwitterCard,
		draft.ExternalID, draft.PublishedAt,
	)

	post, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// DeleteByKey locates a post by id-or-slug, deletes it, and best-effort
// removes the associated durable image object
func (ps *PostService) DeleteByKey(ctx context.Context, key string) error {
	existing, err := ps.GetByIDOrSlug(ctx, key)
	if err != nil {
		return err
	}

	// Use repository if available (for testing)
	if ps.repo != nil {
		if err := ps.repo.Delete(ctx, existing.ID); err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
	} else {
		if _, err := ps.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, existing.ID); err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
	}

	if ps.images != nil {
		ps.images.RemoveImageObject(ctx, existing.FeaturedImageURL)
	}

	return nil
}

// PostURL returns the canonical path of a post
func (ps *PostService) PostURL(post *models.BlogPost) string {
	return ps.blogBasePath + "/" + post.Slug
}
