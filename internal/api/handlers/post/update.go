package post

import (
	"net/http"

	"Masterblog/internal/api/handlers"
	"Masterblog/internal/core/posts"
)

// UpdateHandler handles post updates
type UpdateHandler struct {
	service posts.Service
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(service posts.Service) *UpdateHandler {
	return &UpdateHandler{
		service: service,
	}
}

// HandleUpdate handles PUT /api/posts/{id}
// The body is merged onto the stored post; the id never changes.
// An unknown id is a 404 whatever the body holds.
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	if _, err := h.service.GetPost(r.Context(), id); err != nil {
		handleServiceError(w, err, id)
		return
	}

	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	updated, err := h.service.UpdatePost(r.Context(), id, fields)
	if err != nil {
		handleServiceError(w, err, id)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, posts.UpdatePostResponse{
		Message: "Post updated successfully.",
		Post:    updated,
	})
}
