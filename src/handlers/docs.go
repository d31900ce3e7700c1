package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceVersion is reported by the discovery document
const ServiceVersion = "1.0.0"

// DocsHandler serves the unauthenticated API discovery document
type DocsHandler struct {
	baseURL string
}

// NewDocsHandler creates a new docs handler
func NewDocsHandler(baseURL string) *DocsHandler {
	return &DocsHandler{baseURL: baseURL}
}

// HandleDocs returns the service description, endpoint list, auth
// instructions and an example request. No credential required: this is
// the discovery surface for new integrations.
func (dh *DocsHandler) HandleDocs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "SEO Blog API",
		"version":     ServiceVersion,
		"description": "API for managing blog posts with SEO optimization",
		"endpoints": gin.H{
			"GET /":             "API documentation (this page)",
			"GET /posts":        "List all posts (requires auth)",
			"GET /posts/:id":    "Get single post by ID or slug (requires auth)",
			"POST /posts":       "Create new post (requires auth)",
			"PUT /posts/:id":    "Update existing post (requires auth)",
			"DELETE /posts/:id": "Delete post (requires auth)",
		},
		"authentication": gin.H{
			"type":        "API Key",
			"header":      "x-api-key",
			"description": "Include your API key in the x-api-key header",
		},
		"example": gin.H{
			"createPost": gin.H{
				"method": "POST",
				"url":    dh.baseURL + "/posts",
				"headers": gin.H{
					"Content-Type": "application/json",
					"x-api-key":    "your-api-key",
				},
				"body": gin.H{
					"title":         "My Blog Post",
					"slug":          "my-blog-post",
					"content":       "<p>Your HTML content here...</p>",
					"excerpt":       "A brief summary",
					"author":        "John Doe",
					"featuredImage": "https://example.com/image.jpg",
					"status":        "published",
					"contentId":     "uuid-from-your-platform",
					"seo": gin.H{
						"metaTitle":       "My Blog Post | Site Name",
						"metaDescription": "A compelling description",
						"focusKeyword":    "blog post",
						"seoScore":        85,
					},
				},
			},
		},
	})
}
