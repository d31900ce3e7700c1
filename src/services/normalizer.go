package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/alllin1/seo-blog-api/src/models"
)

// Payload normalization for the ingestion endpoint. Incoming documents come
// from several content platforms with inconsistent field naming, so every
// canonical field is resolved from an ordered list of candidate keys. The
// alias tables below are data, not branching code: supporting a new client
// convention means appending a key, nothing else.

// fieldAliases is an ordered list of candidate document keys for one
// canonical field. Earlier entries win.
type fieldAliases []string

var (
	contentAliases    = fieldAliases{"content", "body"}
	imageAliases      = fieldAliases{"featuredImage", "featured_image", "image_url"}
	externalIDAliases = fieldAliases{"contentId", "external_id", "externalId"}
	keywordAliases    = fieldAliases{"keywords", "tags"}
	publishedAliases  = fieldAliases{"published_at", "publishedAt"}

	// Flat SEO fields, used when no nested "seo" object is present
	flatSEOTitleAliases     = fieldAliases{"seo_title", "seoTitle", "metaTitle"}
	flatMetaDescAliases     = fieldAliases{"meta_description", "metaDescription"}
	flatFocusKeywordAliases = fieldAliases{"focus_keyword", "focusKeyword"}
	flatSEOScoreAliases     = fieldAliases{"seo_score", "seoScore"}
	flatCanonicalAliases    = fieldAliases{"canonical_url", "canonicalUrl"}

	// Nested SEO fields, resolved inside the "seo" object when present.
	// The nested block fully supersedes the flat fields; no merging.
	nestedSEOTitleAliases     = fieldAliases{"metaTitle", "seo_title", "title"}
	nestedMetaDescAliases     = fieldAliases{"metaDescription", "meta_description", "description"}
	nestedFocusKeywordAliases = fieldAliases{"focusKeyword", "focus_keyword", "keyword"}
	nestedSEOScoreAliases     = fieldAliases{"seoScore", "seo_score", "score"}
	nestedCanonicalAliases    = fieldAliases{"canonicalUrl", "canonical_url", "canonical"}

	openGraphAliases   = fieldAliases{"openGraph", "open_graph"}
	twitterCardAliases = fieldAliases{"twitter", "twitter_card", "twitterCard"}

	slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// str resolves the first alias whose value is a non-empty string.
func (fa fieldAliases) str(doc map[string]interface{}) string {
	for _, key := range fa {
		if s, ok := doc[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// number resolves the first alias whose value is a non-zero JSON number.
func (fa fieldAliases) number(doc map[string]interface{}) *int {
	for _, key := range fa {
		switch v := doc[key].(type) {
		case float64:
			if v != 0 {
				n := int(v)
				return &n
			}
		case int:
			if v != 0 {
				n := v
				return &n
			}
		}
	}
	return nil
}

// object resolves the first alias whose value is a JSON object.
func (fa fieldAliases) object(doc map[string]interface{}) map[string]interface{} {
	for _, key := range fa {
		if m, ok := doc[key].(map[string]interface{}); ok {
			return m
		}
	}
	return map[string]interface{}{}
}

// stringList resolves the first alias whose value is an array, keeping the
// string elements in order. Duplicates are deliberately not removed.
func (fa fieldAliases) stringList(doc map[string]interface{}) []string {
	for _, key := range fa {
		raw, ok := doc[key].([]interface{})
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

// Slugify derives a URL-safe slug from a title: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, leading and
// trailing hyphens trimmed.
func Slugify(title string) string {
	slug := slugStripRe.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// NormalizePayload maps a loosely-structured caller document onto a
// canonical post draft. It is pure: no I/O, no identifier assignment.
// It fails only when neither a title nor any content can be resolved;
// per-field requirements are enforced by the caller.
func NormalizePayload(doc map[string]interface{}) (*models.PostDraft, error) {
	title, _ := doc["title"].(string)
	content := contentAliases.str(doc)

	if title == "" && content == "" {
		return nil, ErrEmptyPost
	}

	draft := &models.PostDraft{
		Title:            title,
		Content:          content,
		Excerpt:          fieldAliases{"excerpt"}.str(doc),
		Author:           fieldAliases{"author"}.str(doc),
		FeaturedImageURL: imageAliases.str(doc),
		ExternalID:       externalIDAliases.str(doc),
		Keywords:         keywordAliases.stringList(doc),
		OpenGraph:        openGraphAliases.object(doc),
		TwitterCard:      twitterCardAliases.object(doc),
		SchemaMarkup:     resolveSchemaMarkup(doc),
	}

	if slug, ok := doc["slug"].(string); ok && slug != "" {
		draft.Slug = slug
	} else {
		draft.Slug = Slugify(title)
	}

	if status, ok := doc["status"].(string); ok && status != "" {
		draft.Status = status
	} else {
		draft.Status = models.PostStatusPublished
	}

	if seo, ok := doc["seo"].(map[string]interface{}); ok {
		draft.SEOTitle = nestedSEOTitleAliases.str(seo)
		draft.MetaDescription = nestedMetaDescAliases.str(seo)
		draft.FocusKeyword = nestedFocusKeywordAliases.str(seo)
		draft.SEOScore = nestedSEOScoreAliases.number(seo)
		draft.CanonicalURL = nestedCanonicalAliases.str(seo)
	} else {
		draft.SEOTitle = flatSEOTitleAliases.str(doc)
		draft.MetaDescription = flatMetaDescAliases.str(doc)
		draft.FocusKeyword = flatFocusKeywordAliases.str(doc)
		draft.SEOScore = flatSEOScoreAliases.number(doc)
		draft.CanonicalURL = flatCanonicalAliases.str(doc)
	}

	draft.PublishedAt = time.Now()
	if raw := publishedAliases.str(doc); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			draft.PublishedAt = ts
		}
	}

	return draft, nil
}

// resolveSchemaMarkup handles the schema field's special shape: a "schema"
// object may wrap the actual JSON-LD under a "jsonLd" member, or be the
// markup itself; "schema_markup" is the flat fallback.
func resolveSchemaMarkup(doc map[string]interface{}) map[string]interface{} {
	if schema, ok := doc["schema"].(map[string]interface{}); ok {
		if jsonLd, ok := schema["jsonLd"].(map[string]interface{}); ok {
			return jsonLd
		}
		return schema
	}
	if markup, ok := doc["schema_markup"].(map[string]interface{}); ok {
		return markup
	}
	return map[string]interface{}{}
}
