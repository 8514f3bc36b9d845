package post

import (
	"fmt"
	"net/http"

	"Masterblog/internal/api/handlers"
	"Masterblog/internal/core/posts"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate handles POST /api/posts
// Body: {"title": "...", "content": "...", ...extra fields}
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	created, err := h.service.CreatePost(r.Context(), fields)
	if err != nil {
		handleServiceError(w, err, 0)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, posts.CreatePostResponse{
		Message: fmt.Sprintf("New post with id %d has been added successfully.", created.ID),
		Post:    created,
	})
}
