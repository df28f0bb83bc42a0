// Package handlers provides HTTP API request handlers.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/augustawind/conway-web/internal/model"
	"github.com/augustawind/conway-web/internal/repository"
)

// PatternHandler handles HTTP requests for the pattern library.
type PatternHandler struct {
	repo *repository.PatternRepository
}

// NewPatternHandler creates a new PatternHandler.
func NewPatternHandler(repo *repository.PatternRepository) *PatternHandler {
	return &PatternHandler{repo: repo}
}

// PatternResponse represents a pattern in API responses.
type PatternResponse struct {
	Name      string `json:"name"`
	Body      string `json:"body"`
	Source    string `json:"source"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toPatternResponse(p *model.Pattern) *PatternResponse {
	return &PatternResponse{
		Name:      p.Name,
		Body:      p.Body,
		Source:    string(p.Source),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

// sendError sends an error response with the appropriate status code.
func sendError(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// List handles GET /api/patterns - lists the pattern library.
func (h *PatternHandler) List(c *gin.Context) {
	patterns, err := h.repo.List(c.Request.Context())
	if err != nil {
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list patterns: "+err.Error())
		return
	}

	resp := make([]*PatternResponse, 0, len(patterns))
	for _, p := range patterns {
		resp = append(resp, toPatternResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"patterns": resp})
}

// Get handles GET /api/patterns/:name - retrieves one pattern.
func (h *PatternHandler) Get(c *gin.Context) {
	name := c.Param("name")

	pattern, err := h.repo.GetByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, model.ErrPatternNotFound) {
			sendError(c, http.StatusNotFound, "PATTERN_NOT_FOUND", "Pattern "+name+" not found")
			return
		}
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get pattern: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, toPatternResponse(pattern))
}

// Create handles POST /api/patterns - stores a user pattern.
func (h *PatternHandler) Create(c *gin.Context) {
	var req model.CreatePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	now := time.Now()
	pattern := &model.Pattern{
		Name:      req.Name,
		Body:      req.Body,
		Source:    model.PatternSourceUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repo.Create(c.Request.Context(), pattern); err != nil {
		if errors.Is(err, model.ErrPatternExists) {
			sendError(c, http.StatusConflict, "PATTERN_EXISTS", "Pattern "+req.Name+" already exists")
			return
		}
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create pattern: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, toPatternResponse(pattern))
}

// Delete handles DELETE /api/patterns/:name - removes a pattern.
func (h *PatternHandler) Delete(c *gin.Context) {
	name := c.Param("name")

	if err := h.repo.Delete(c.Request.Context(), name); err != nil {
		if errors.Is(err, model.ErrPatternNotFound) {
			sendError(c, http.StatusNotFound, "PATTERN_NOT_FOUND", "Pattern "+name+" not found")
			return
		}
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete pattern: "+err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers the pattern handler routes on a Gin router group.
func (h *PatternHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/patterns", h.List)
	rg.GET("/patterns/:name", h.Get)
	rg.POST("/patterns", h.Create)
	rg.DELETE("/patterns/:name", h.Delete)
}
