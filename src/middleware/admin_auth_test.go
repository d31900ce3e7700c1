package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newAdminRouter() *gin.Engine {
	router := gin.New()
	admin := router.Group("/admin")
	admin.Use(AdminAuthMiddleware())
	admin.GET("/credentials", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": c.GetString("admin_id")})
	})
	return router
}

func TestSetJWTSecret(t *testing.T) {
	if err := SetJWTSecret(""); err == nil {
		t.Error("expected error for empty secret")
	}
	if err := SetJWTSecret("too-short"); err == nil {
		t.Error("expected error for short secret")
	}
	if err := SetJWTSecret("this-is-a-test-secret-of-sufficient-length"); err != nil {
		t.Errorf("expected no error for long secret, got %v", err)
	}
}

func TestAdminTokenRoundTrip(t *testing.T) {
	if err := SetJWTSecret("this-is-a-test-secret-of-sufficient-length"); err != nil {
		t.Fatalf("failed to set secret: %v", err)
	}

	adminID := uuid.New()
	token, err := GenerateAdminToken(adminID, "admin")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateAdminToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.AdminID != adminID.String() {
		t.Errorf("expected admin id %s, got %s", adminID, claims.AdminID)
	}
	if claims.Username != "admin" {
		t.Errorf("expected username admin, got %s", claims.Username)
	}

	if _, err := ValidateAdminToken("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	if err := SetJWTSecret("this-is-a-test-secret-of-sufficient-length"); err != nil {
		t.Fatalf("failed to set secret: %v", err)
	}
	router := newAdminRouter()

	adminID := uuid.New()
	token, err := GenerateAdminToken(adminID, "admin")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	t.Run("bearer header accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/credentials", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("cookie accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/credentials", nil)
		req.AddCookie(&http.Cookie{Name: "admin_token", Value: token})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("missing token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/credentials", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/credentials", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}
