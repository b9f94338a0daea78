package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/storyarchive/content-api/models"
	"github.com/storyarchive/content-api/repositories"
	"github.com/storyarchive/content-api/services"
	"github.com/storyarchive/content-api/utils"
	"go.uber.org/zap"
)

// timeFormat is the timestamp layout used in API responses
const timeFormat = time.RFC3339

// CreateContentRequest represents a request to create a content entry
type CreateContentRequest struct {
	Title        string   `json:"title" validate:"required"`
	Introduction string   `json:"introduction" validate:"required"`
	Source       string   `json:"source" validate:"required"`
	Story        string   `json:"story" validate:"required"`
	Images       []string `json:"images" validate:"required,max=5,dive,required"`
}

// UpdateContentRequest represents a partial update to a content entry
type UpdateContentRequest struct {
	Title        *string   `json:"title,omitempty"`
	Introduction *string   `json:"introduction,omitempty"`
	Source       *string   `json:"source,omitempty"`
	Story        *string   `json:"story,omitempty"`
	Images       *[]string `json:"images,omitempty" validate:"omitempty,max=5,dive,required"`
}

// ContentResponse represents a content entry in API responses
type ContentResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Introduction string    `json:"introduction"`
	Source       string    `json:"source"`
	Story        string    `json:"story"`
	Images       []string  `json:"images"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

// ContentHandler handles content-related HTTP requests
type ContentHandler struct {
	contents repositories.ContentRepository
	logger   *zap.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(contents repositories.ContentRepository, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		contents: contents,
		logger:   logger,
	}
}

// HandleListContents handles GET /content
func (h *ContentHandler) HandleListContents(w http.ResponseWriter, r *http.Request) {
	contents, err := h.contents.List(r.Context())
	if err != nil {
		HandleServiceError(w, services.WrapInternal("failed to list contents", err), h.logger)
		return
	}

	responses := make([]ContentResponse, 0, len(contents))
	for _, content := range contents {
		responses = append(responses, toContentResponse(content))
	}

	if err := utils.WriteOK(w, responses); err != nil {
		h.logger.Error("failed to write content list response", zap.Error(err))
	}
}

// HandleGetContent handles GET /content/{id}
func (h *ContentHandler) HandleGetContent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.contentID(w, r)
	if !ok {
		return
	}

	content, err := h.contents.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, translateContentError(err), h.logger)
		return
	}

	if err := utils.WriteOK(w, toContentResponse(content)); err != nil {
		h.logger.Error("failed to write content response", zap.Error(err))
	}
}

// HandleCreateContent handles POST /content
func (h *ContentHandler) HandleCreateContent(w http.ResponseWriter, r *http.Request) {
	var req CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	content := models.NewContent(req.Title, req.Introduction, req.Source, req.Story, req.Images)
	if err := h.contents.Create(r.Context(), content); err != nil {
		HandleServiceError(w, services.WrapInternal("failed to create content", err), h.logger)
		return
	}

	h.logger.Info("content created", zap.String("id", content.ID.String()))

	if err := utils.WriteCreated(w, toContentResponse(content)); err != nil {
		h.logger.Error("failed to write content response", zap.Error(err))
	}
}

// HandleUpdateContent handles PUT /content/{id}
func (h *ContentHandler) HandleUpdateContent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.contentID(w, r)
	if !ok {
		return
	}

	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	content, err := h.contents.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, translateContentError(err), h.logger)
		return
	}

	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Introduction != nil {
		content.Introduction = *req.Introduction
	}
	if req.Source != nil {
		content.Source = *req.Source
	}
	if req.Story != nil {
		content.Story = *req.Story
	}
	if req.Images != nil {
		content.Images = *req.Images
	}
	content.UpdatedAt = time.Now()

	if err := h.contents.Update(r.Context(), content); err != nil {
		HandleServiceError(w, translateContentError(err), h.logger)
		return
	}

	h.logger.Info("content updated", zap.String("id", content.ID.String()))

	if err := utils.WriteOK(w, toContentResponse(content)); err != nil {
		h.logger.Error("failed to write content response", zap.Error(err))
	}
}

// HandleDeleteContent handles DELETE /content/{id}
func (h *ContentHandler) HandleDeleteContent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.contentID(w, r)
	if !ok {
		return
	}

	if err := h.contents.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, translateContentError(err), h.logger)
		return
	}

	h.logger.Info("content deleted", zap.String("id", id.String()))
	utils.WriteNoContent(w)
}

// contentID parses the {id} route parameter, writing a 400 on failure
func (h *ContentHandler) contentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid content ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

// toContentResponse converts a content model to its API representation
func toContentResponse(content *models.Content) ContentResponse {
	images := content.Images
	if images == nil {
		images = []string{}
	}
	return ContentResponse{
		ID:           content.ID,
		Title:        content.Title,
		Introduction: content.Introduction,
		Source:       content.Source,
		Story:        content.Story,
		Images:       images,
		CreatedAt:    content.CreatedAt.UTC().Format(timeFormat),
		UpdatedAt:    content.UpdatedAt.UTC().Format(timeFormat),
	}
}

// translateContentError maps repository errors to domain errors
func translateContentError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return services.ErrContentNotFound
	}
	return services.WrapInternal("content storage error", err)
}
