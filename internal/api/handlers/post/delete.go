package post

import (
	"fmt"
	"net/http"

	"Masterblog/internal/api/handlers"
	"Masterblog/internal/core/posts"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new handler for deleting posts
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// HandleDelete handles DELETE /api/posts/{id}
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	if _, err := h.service.DeletePost(r.Context(), id); err != nil {
		handleServiceError(w, err, id)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, posts.DeletePostResponse{
		Message: fmt.Sprintf("Post with id %d has been deleted successfully.", id),
	})
}
