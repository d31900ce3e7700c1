package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ephemeralHostPatterns lists generative-image providers whose URLs expire.
// Any featured image hosted on one of these must be copied to durable
// storage before the post is persisted; all other URLs pass through.
var ephemeralHostPatterns = []string{
	"replicate.delivery",
	"pbxt.replicate.delivery",
	"oaidalleapiprodscus.blob.core.windows.net",
	"dalleprodsec.blob.core.windows.net",
}

const maxImageSize = 20 * 1024 * 1024 // 20MB

// ObjectStorage is the durable media store the image service uploads to
type ObjectStorage interface {
	// Upload stores an object with overwrite-allowed semantics and returns
	// its publicly addressable URL
	Upload(ctx context.Context, name string, data []byte) (string, error)
	// Remove deletes an object; removing a missing object is not an error
	Remove(ctx context.Context, name string) error
	// BaseURL returns the public URL prefix of stored objects
	BaseURL() string
}

// ImageService persists ephemeral featured images to durable storage
type ImageService struct {
	store  ObjectStorage
	client *http.Client
}

// NewImageService creates an image service. fetchTimeout bounds the
// outbound download; a timed-out fetch is treated like any other failure.
func NewImageService(store ObjectStorage, fetchTimeout time.Duration) *ImageService {
	return &ImageService{
		store: store,
		client: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// IsEphemeralURL reports whether the URL is hosted by a known
// generative-image provider and will expire
func IsEphemeralURL(url string) bool {
	if url == "" {
		return false
	}
	for _, pattern := range ephemeralHostPatterns {
		if strings.Contains(url, pattern) {
			return true
		}
	}
	return false
}

// extensionForContentType maps a response content type to a file extension
func extensionForContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "jpg"
	case strings.Contains(contentType, "gif"):
		return "gif"
	default:
		return "webp"
	}
}

// PersistFeaturedImage returns a URL guaranteed not to expire. URLs not on
// a known ephemeral host pass through unchanged, which also makes the call
// idempotent for already-persisted URLs. For ephemeral URLs the image is
// downloaded and re-uploaded under a name derived from contentID, so a
// repeated sync overwrites the same object. Any fetch or upload failure
// degrades to the original URL: a broken-but-present image is preferred to
// blocking publication.
func (is *ImageService) PersistFeaturedImage(ctx context.Context, imageURL, contentID string) string {
	if !IsEphemeralURL(imageURL) {
		return imageURL
	}

	log.Info().Str("url", imageURL).Str("content_id", contentID).Msg("downloading ephemeral image")

	publicURL, err := is.fetchAndStore(ctx, imageURL, contentID)
	if err != nil {
		log.Warn().Err(err).Str("url", imageURL).Msg("image persistence failed, keeping original URL")
		return imageURL
	}

	log.Info().Str("url", publicURL).Msg("image persisted")
	return publicURL
}

func (is *ImageService) fetchAndStore(ctx context.Context, imageURL, contentID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build image request: %w", err)
	}

	resp, err := is.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read image body: %w", err)
	}
	if len(data) > maxImageSize {
		return "", fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/webp"
	}

	objectName := fmt.Sprintf("%s-featured.%s", contentID, extensionForContentType(contentType))

	publicURL, err := is.store.Upload(ctx, objectName, data)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return publicURL, nil
}

// RemoveImageObject best-effort deletes the stored object behind a media
// URL. URLs outside the managed store are ignored.
func (is *ImageService) RemoveImageObject(ctx context.Context, imageURL string) {
	base := is.store.BaseURL()
	if imageURL == "" || base == "" || !strings.HasPrefix(imageURL, base+"/") {
		return
	}
	name := imageURL[strings.LastIndex(imageURL, "/")+1:]
	if name == "" {
		return
	}
	if err := is.store.Remove(ctx, name); err != nil {
		log.Warn().Err(err).Str("object", name).Msg("failed to delete image object")
	}
}
