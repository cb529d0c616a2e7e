package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gigboard/internal/app"
	"gigboard/internal/transport/http/middleware"
	"gigboard/internal/transport/http/response"
)

type PostHandler struct {
	postService *app.PostService
}

// CreatePostRequest deliberately has no owner field: ownership always comes
// from the session, so a spoofed owner_id in the body is ignored by the
// decoder.
type CreatePostRequest struct {
	Title          string     `json:"title" binding:"required,max=128"`
	Content        string     `json:"content" binding:"required,max=255"`
	Company        string     `json:"company" binding:"max=128"`
	Location       string     `json:"location" binding:"required,max=128"`
	SkillsRequired string     `json:"skills_required" binding:"max=255"`
	Budget         float64    `json:"budget" binding:"omitempty,gte=0"`
	StartDate      *time.Time `json:"start_date"`
	Deadline       *time.Time `json:"deadline"`
}

type UpdatePostRequest struct {
	Title    string `json:"title" binding:"max=128"`
	Content  string `json:"content" binding:"max=255"`
	Location string `json:"location" binding:"max=128"`
}

func NewPostHandler(postService *app.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "not authenticated")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "title, content, and location are required fields")
		return
	}

	post, err := h.postService.Create(c.Request.Context(), identity.UserID, app.CreatePostInput{
		Title:          req.Title,
		Content:        req.Content,
		Company:        req.Company,
		Location:       req.Location,
		SkillsRequired: req.SkillsRequired,
		Budget:         req.Budget,
		StartDate:      req.StartDate,
		Deadline:       req.Deadline,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "title, content, and location are required fields")
		case errors.Is(err, app.ErrContentTooLong):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create post failed")
		}
		return
	}

	response.Created(c, post)
}

// Edit returns the payload the edit view renders: the post fields plus the
// editing flag.
func (h *PostHandler) Edit(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := h.postService.GetByID(id)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		case errors.Is(err, app.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.CodePostNotFound, "no post found with this id")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch post failed")
		}
		return
	}

	response.OK(c, gin.H{
		"post":      post,
		"logged_in": true,
		"editing":   true,
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "not authenticated")
		return
	}

	id, ok := parsePostID(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	post, err := h.postService.Update(c.Request.Context(), identity.UserID, id, app.UpdatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Location: req.Location,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "title, content, and location are required fields")
		case errors.Is(err, app.ErrContentTooLong):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.CodePostNotFound, "no post found with this id")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update post failed")
		}
		return
	}

	response.OK(c, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "not authenticated")
		return
	}

	id, ok := parsePostID(c)
	if !ok {
		return
	}

	count, err := h.postService.Delete(c.Request.Context(), id, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		case errors.Is(err, app.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.CodePostNotFound, "no post found with this id")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete post failed")
		}
		return
	}

	response.OK(c, gin.H{"deleted": count})
}

// parsePostID treats an unparseable or zero id like any other id that
// matches no row: the route always answers 404, never 400, for a bad id.
func parsePostID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		response.Error(c, http.StatusNotFound, response.CodePostNotFound, "no post found with this id")
		return 0, false
	}
	return uint(id64), true
}
