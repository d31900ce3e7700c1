package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/alllin1/seo-blog-api/src/middleware"
	"github.com/alllin1/seo-blog-api/src/models"
	"github.com/alllin1/seo-blog-api/src/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler handles admin authentication and credential management
type AdminHandler struct {
	adminService      *services.AdminService
	credentialService *services.CredentialService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService, credentialService *services.CredentialService) *AdminHandler {
	return &AdminHandler{
		adminService:      adminService,
		credentialService: credentialService,
	}
}

// AdminLoginRequest represents the request body for admin login
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginResponse represents the response for successful login
type AdminLoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// HandleAdminLogin authenticates an admin user and returns a JWT token
func (ah *AdminHandler) HandleAdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body",
		})
		return
	}

	admin, err := ah.adminService.AuthenticateAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid username or password",
		})
		return
	}

	token, err := middleware.GenerateAdminToken(admin.ID, admin.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to generate token",
		})
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	c.SetCookie(
		"admin_token",
		token,
		int(24*time.Hour.Seconds()),
		"/",
		"",
		true, // Secure
		true, // HttpOnly
	)

	c.JSON(http.StatusOK, AdminLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	})
}

// HandleListCredentials lists all webhook credentials
func (ah *AdminHandler) HandleListCredentials(c *gin.Context) {
	creds, err := ah.credentialService.ListCredentials(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to list credentials",
		})
		return
	}

	if creds == nil {
		creds = []models.WebhookCredential{}
	}

	c.JSON(http.StatusOK, gin.H{
		"credentials": creds,
	})
}

// CreateCredentialRequest represents the request body for credential creation
type CreateCredentialRequest struct {
	Name   string `json:"name" binding:"required"`
	UserID string `json:"user_id"`
}

// HandleCreateCredential generates a new webhook credential. The key is
// returned in this response and never regenerated.
func (ah *AdminHandler) HandleCreateCredential(c *gin.Context) {
	var req CreateCredentialRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body",
		})
		return
	}

	userID := req.UserID
	if userID == "" {
		if adminID, ok := c.Get("admin_id"); ok {
			userID, _ = adminID.(string)
		}
	}

	cred, err := ah.credentialService.CreateCredential(c.Request.Context(), userID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create credential",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"credential": cred,
	})
}

// SetCredentialActiveRequest represents the request body for toggling a credential
type SetCredentialActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// HandleSetCredentialActive toggles a credential's active flag. A
// deactivated credential fails all ingestion requests immediately.
func (ah *AdminHandler) HandleSetCredentialActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid credential id",
		})
		return
	}

	var req SetCredentialActiveRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body",
		})
		return
	}

	if err := ah.credentialService.SetCredentialActive(c.Request.Context(), id, *req.Active); err != nil {
		if errors.Is(err, services.ErrCredentialNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "credential not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to update credential",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// HandleDeleteCredential permanently deletes a credential
func (ah *AdminHandler) HandleDeleteCredential(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid credential id",
		})
		return
	}

	if err := ah.credentialService.DeleteCredential(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrCredentialNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "credential not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to delete credential",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
