package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alllin1/seo-blog-api/src/models"
	"github.com/alllin1/seo-blog-api/src/repositories/mock"
	"github.com/alllin1/seo-blog-api/src/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter() *gin.Engine {
	repo := mock.NewCredentialRepository()
	repo.GetByAPIKeyFunc = func(ctx context.Context, apiKey string) (*models.WebhookCredential, error) {
		switch apiKey {
		case "valid-key":
			return &models.WebhookCredential{ID: uuid.New(), APIKey: apiKey, IsActive: true}, nil
		case "revoked-key":
			return &models.WebhookCredential{ID: uuid.New(), APIKey: apiKey, IsActive: false}, nil
		}
		return nil, nil
	}
	credentials := services.NewCredentialServiceWithRepo(repo)

	router := gin.New()
	protected := router.Group("/posts")
	protected.Use(RequireAPIKey(credentials))
	protected.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.NoRoute(RequireAPIKey(credentials), func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": "Endpoint not found",
		})
	})
	return router
}

func TestRequireAPIKey(t *testing.T) {
	router := newProtectedRouter()

	t.Run("valid key passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.Header.Set(APIKeyHeader, "valid-key")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	// Every failure mode must produce the identical response body so
	// callers cannot distinguish missing, unknown and revoked keys.
	failures := map[string]func(req *http.Request){
		"missing key": func(req *http.Request) {},
		"unknown key": func(req *http.Request) { req.Header.Set(APIKeyHeader, "wrong-key") },
		"revoked key": func(req *http.Request) { req.Header.Set(APIKeyHeader, "revoked-key") },
		"empty key":   func(req *http.Request) { req.Header.Set(APIKeyHeader, "") },
	}

	var bodies []string
	for name, prepare := range failures {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/posts", nil)
			prepare(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["error"] != "Unauthorized" || body["message"] != "Invalid or missing API key" {
				t.Errorf("unexpected rejection envelope: %v", body)
			}
			bodies = append(bodies, w.Body.String())
		})
	}

	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Errorf("rejection bodies differ between failure modes: %q vs %q", bodies[0], bodies[i])
		}
	}
}

func TestUnknownRoutesRequireAPIKey(t *testing.T) {
	router := newProtectedRouter()

	// An unmatched path must be indistinguishable from a matched one to an
	// unauthenticated caller: the credential check runs before the 404.
	unknowns := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/definitely-not-a-route"},
		{http.MethodPatch, "/posts/some-slug"},
	}

	for _, u := range unknowns {
		t.Run("unauthenticated "+u.method+" "+u.path, func(t *testing.T) {
			req := httptest.NewRequest(u.method, u.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["error"] != "Unauthorized" || body["message"] != "Invalid or missing API key" {
				t.Errorf("unexpected rejection envelope: %v", body)
			}
		})

		t.Run("authenticated "+u.method+" "+u.path, func(t *testing.T) {
			req := httptest.NewRequest(u.method, u.path, nil)
			req.Header.Set(APIKeyHeader, "valid-key")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Fatalf("expected 404 for a valid key on an unknown route, got %d", w.Code)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["error"] != "Not found" || body["message"] != "Endpoint not found" {
				t.Errorf("unexpected not-found envelope: %v", body)
			}
		})
	}
}
