package post

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"Masterblog/internal/api/handlers"
	"Masterblog/internal/core/posts"
)

// maxBodyBytes caps request bodies for create and update
const maxBodyBytes = 1 * 1024 * 1024

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error, id int64) {
	var valErr *posts.ValidationError
	switch {
	case errors.As(err, &valErr):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", valErr.Message)

	case posts.IsNotFound(err):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound",
			fmt.Sprintf("Post with id %d was not found.", id))

	default:
		// Don't leak internal error details to clients
		log.Error().Err(err).Msg("unexpected error in post handler")
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}

// decodeFields reads a JSON object body into posts.Fields.
// Numbers are kept as json.Number so they round-trip verbatim.
func decodeFields(w http.ResponseWriter, r *http.Request) (posts.Fields, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var fields posts.Fields
	if err := dec.Decode(&fields); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
				"Request body too large (max 1MB)")
			return nil, false
		}
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Request body must be a JSON object")
		return nil, false
	}
	if fields == nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Request body must be a JSON object")
		return nil, false
	}
	return fields, true
}

// postID parses the {id} URL parameter. The route pattern only admits digits,
// so a failure here means the value overflowed int64 and cannot name a live post.
func postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound",
			fmt.Sprintf("Post with id %s was not found.", raw))
		return 0, false
	}
	return id, true
}
