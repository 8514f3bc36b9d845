package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Masterblog/internal/api/middleware"
	"Masterblog/internal/core/posts"
	"Masterblog/internal/core/ratelimit"
	"Masterblog/internal/db/memory"
)

func newTestRouter(t *testing.T, requests int, opts RouterOptions) http.Handler {
	t.Helper()

	repo := memory.NewPostRepository()
	ctx := context.Background()
	_, err := repo.Create(ctx, posts.Fields{"title": "First post1", "content": "This is the first post."})
	require.NoError(t, err)
	_, err = repo.Create(ctx, posts.Fields{"title": "Second post1", "content": "This is the second post."})
	require.NoError(t, err)

	limiter, err := ratelimit.New(ratelimit.NewMemoryStore(), requests, time.Minute)
	require.NoError(t, err)

	opts.Logger = zerolog.Nop()
	return NewRouter(posts.NewPostService(repo), middleware.NewRateLimiter(limiter, middleware.ClientIP), opts)
}

func call(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.RemoteAddr = "203.0.113.7:5555"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_EndToEnd(t *testing.T) {
	h := newTestRouter(t, 10, RouterOptions{})

	rr := call(h, http.MethodPost, "/api/posts", `{"title":"T","content":"C"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created struct {
		Message string                 `json:"message"`
		Post    map[string]interface{} `json:"posts"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.Equal(t, float64(3), created.Post["id"])

	rr = call(h, http.MethodGet, "/api/posts?sort=title&direction=desc&page=1&limit=2", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var listed []map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&listed))
	require.Len(t, listed, 2)
	// "T" > "Second post1" > "First post1"
	assert.Equal(t, "T", listed[0]["title"])
	assert.Equal(t, "Second post1", listed[1]["title"])

	rr = call(h, http.MethodGet, "/api/posts/search?title=second", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var found []map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&found))
	require.Len(t, found, 1)
	assert.Equal(t, "Second post1", found[0]["title"])

	rr = call(h, http.MethodGet, "/api/posts/search?title=zzz", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"No posts match the search criteria","post":[]}`, rr.Body.String())

	rr = call(h, http.MethodPut, "/api/posts/3", `{"content":"changed"}`)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = call(h, http.MethodDelete, "/api/posts/3", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = call(h, http.MethodDelete, "/api/posts/3", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_Fallbacks(t *testing.T) {
	h := newTestRouter(t, 10, RouterOptions{})

	tests := []struct {
		method string
		target string
		code   int
		body   string
	}{
		{method: http.MethodGet, target: "/nope", code: http.StatusNotFound, body: `{"error":"Not Found"}`},
		{method: http.MethodGet, target: "/api/posts/", code: http.StatusNotFound, body: `{"error":"Not Found"}`},
		{method: http.MethodPost, target: "/api/posts/", code: http.StatusNotFound, body: `{"error":"Not Found"}`},
		{method: http.MethodGet, target: "/api/posts/abc", code: http.StatusNotFound, body: `{"error":"Not Found"}`},
		{method: http.MethodGet, target: "/api/posts/1", code: http.StatusMethodNotAllowed, body: `{"error":"Method Not Allowed"}`},
		{method: http.MethodPatch, target: "/api/posts", code: http.StatusMethodNotAllowed, body: `{"error":"Method Not Allowed"}`},
		{method: http.MethodPost, target: "/api/posts/search", code: http.StatusMethodNotAllowed, body: `{"error":"Method Not Allowed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rr := call(h, tt.method, tt.target, "")
			assert.Equal(t, tt.code, rr.Code)
			assert.JSONEq(t, tt.body, rr.Body.String())
		})
	}
}

func TestRouter_RateLimitOnlyGuardsListAndCreate(t *testing.T) {
	h := newTestRouter(t, 2, RouterOptions{})

	assert.Equal(t, http.StatusOK, call(h, http.MethodGet, "/api/posts", "").Code)
	assert.Equal(t, http.StatusCreated, call(h, http.MethodPost, "/api/posts", `{"title":"a","content":"b"}`).Code)

	// GET and POST share one quota
	assert.Equal(t, http.StatusTooManyRequests, call(h, http.MethodGet, "/api/posts", "").Code)
	rr := call(h, http.MethodPost, "/api/posts", `{"title":"zq","content":"d"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	// the rejected create must not have been stored
	rr = call(h, http.MethodGet, "/api/posts/search?title=zq", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	assert.Equal(t, http.StatusOK, call(h, http.MethodPut, "/api/posts/1", `{"title":"x"}`).Code)
	assert.Equal(t, http.StatusOK, call(h, http.MethodGet, "/api/posts/search?title=x", "").Code)
}

func TestRouter_TrustProxyHeaders(t *testing.T) {
	h := newTestRouter(t, 1, RouterOptions{TrustProxyHeaders: true})

	send := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, send("198.51.100.1"))
	assert.Equal(t, http.StatusOK, send("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.1"))
}

func TestRouter_CORS(t *testing.T) {
	h := newTestRouter(t, 10, RouterOptions{AllowedOrigins: []string{"https://blog.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/posts/1", nil)
	req.Header.Set("Origin", "https://blog.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "https://blog.example", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)

	req = httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Origin", "https://blog.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://blog.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t, 10, RouterOptions{})

	rr := call(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}
