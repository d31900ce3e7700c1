package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alllin1/seo-blog-api/src/models"
	"github.com/alllin1/seo-blog-api/src/services"
	"github.com/gin-gonic/gin"
)

// PostHandler handles the blog post ingestion and read endpoints
type PostHandler struct {
	posts *services.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// HandleListPosts returns a page of posts with pagination metadata.
// GET /posts?page=&limit=&status=
func (ph *PostHandler) HandleListPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	status := c.Query("status")

	posts, total, err := ph.posts.ListPosts(c.Request.Context(), status, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}

	if posts == nil {
		posts = []models.BlogPost{}
	}

	totalPages := (total + limit - 1) / limit

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// HandleGetPost returns a single post looked up by id or slug.
// GET /posts/:idOrSlug
func (ph *PostHandler) HandleGetPost(c *gin.Context) {
	post, err := ph.posts.GetByIDOrSlug(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not found",
				"message": "Post not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, post)
}

// HandleCreatePost normalizes the submitted document and resolves it by
// external id: one stored post per idempotency key, created on first
// submission and overwritten on repeats.
// POST /posts
func (ph *PostHandler) HandleCreatePost(c *gin.Context) {
	var doc map[string]interface{}
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad request",
			"message": "Invalid JSON body",
		})
		return
	}

	draft, err := services.NormalizePayload(doc)
	if err != nil || draft.Title == "" || draft.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad request",
			"message": "Title and content are required",
		})
		return
	}
	if !models.ValidPostStatus(draft.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad request",
			"message": "Invalid status value",
		})
		return
	}

	result, err := ph.posts.CreateOrUpdate(c.Request.Context(), draft)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}

	status := http.StatusOK
	if result.Action == services.ActionCreated {
		status = http.StatusCreated
	}

	c.JSON(status, gin.H{
		"success":            true,
		"action":             result.Action,
		"post_id":            result.PostID,
		"external_id":        result.ExternalID,
		"url":                result.URL,
		"featured_image_url": result.FeaturedImageURL,
	})
}

// HandleUpdatePost applies a full-field overwrite onto the post located
// by id or slug.
// PUT /posts/:idOrSlug
func (ph *PostHandler) HandleUpdatePost(c *gin.Context) {
	var doc map[string]interface{}
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad request",
			"message": "Invalid JSON body",
		})
		return
	}

	draft, err := services.NormalizePayload(doc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad request",
			"message": "Title and content are required",
		})
		return
	}
	if !models.ValidPostStatus(draft.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad request",
			"message": "Invalid status value",
		})
		return
	}

	post, err := ph.posts.UpdateByKey(c.Request.Context(), c.Param("idOrSlug"), draft)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not found",
				"message": "Post not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"post_id":            post.ID,
		"external_id":        post.ExternalID,
		"url":                ph.posts.PostURL(post),
		"featured_image_url": post.FeaturedImageURL,
	})
}

// HandleDeletePost deletes the post located by id or slug; the associated
// durable image object is removed best-effort.
// DELETE /posts/:idOrSlug
func (ph *PostHandler) HandleDeletePost(c *gin.Context) {
	err := ph.posts.DeleteByKey(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not found",
				"message": "Post not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post deleted",
	})
}
