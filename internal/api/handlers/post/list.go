package post

import (
	"net/http"
	"strconv"

	"Masterblog/internal/api/handlers"
	"Masterblog/internal/core/posts"
)

// ListHandler handles listing posts
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{
		service: service,
	}
}

// HandleList lists posts, optionally sorted, then paginated
// GET /api/posts?sort={title|content}&direction={asc|desc}&page={n}&limit={n}
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, ok := positiveIntParam(w, query.Get("page"), "page", posts.DefaultPage)
	if !ok {
		return
	}
	limit, ok := positiveIntParam(w, query.Get("limit"), "limit", posts.DefaultLimit)
	if !ok {
		return
	}

	req := posts.ListPostsRequest{
		Sort:      query.Get("sort"),
		Direction: query.Get("direction"),
		Page:      page,
		Limit:     limit,
	}

	results, err := h.service.ListPosts(r.Context(), req)
	if err != nil {
		handleServiceError(w, err, 0)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, results)
}

// positiveIntParam parses an optional integer parameter that must be >= 1
func positiveIntParam(w http.ResponseWriter, raw, name string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest",
			"Invalid "+name+" parameter: must be a positive integer")
		return 0, false
	}
	return n, true
}
