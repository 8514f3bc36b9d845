package post

import (
	"net/http"

	"Masterblog/internal/api/handlers"
	"Masterblog/internal/core/posts"
)

// SearchHandler handles substring search over posts
type SearchHandler struct {
	service posts.Service
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service posts.Service) *SearchHandler {
	return &SearchHandler{
		service: service,
	}
}

// HandleSearch handles GET /api/posts/search?title={q}&content={q}
// No match (including no query at all) is a 404 carrying an empty list.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := posts.SearchPostsRequest{
		Title:   query.Get("title"),
		Content: query.Get("content"),
	}

	results, err := h.service.SearchPosts(r.Context(), req)
	if err != nil {
		handleServiceError(w, err, 0)
		return
	}

	if len(results) == 0 {
		handlers.WriteJSON(w, http.StatusNotFound, posts.SearchMissResponse{
			Message: "No posts match the search criteria",
			Post:    []*posts.Post{},
		})
		return
	}

	handlers.WriteJSON(w, http.StatusOK, results)
}
