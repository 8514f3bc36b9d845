package posts

import (
	"context"
	"fmt"
	"strings"
)

// ListPostsRequest carries the query parameters of GET /api/posts
type ListPostsRequest struct {
	Sort      string
	Direction string
	Page      int
	Limit     int
}

// SearchPostsRequest carries the query parameters of GET /api/posts/search
type SearchPostsRequest struct {
	Title   string
	Content string
}

type postService struct {
	repo Repository
}

// NewPostService creates a new post service
func NewPostService(repo Repository) Service {
	return &postService{
		repo: repo,
	}
}

// CreatePost stores a new post
func (s *postService) CreatePost(ctx context.Context, fields Fields) (*Post, error) {
	if err := ValidateCreateFields(fields); err != nil {
		return nil, err
	}

	post, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// ListPosts runs the listing pipeline: snapshot, optional sort, then pagination
func (s *postService) ListPosts(ctx context.Context, req ListPostsRequest) ([]*Post, error) {
	req, err := s.normalizeListRequest(req)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	if req.Sort != "" {
		all = Sort(all, req.Sort, req.Direction)
	}
	return Paginate(all, req.Page, req.Limit), nil
}

// SearchPosts filters a snapshot of the collection
func (s *postService) SearchPosts(ctx context.Context, req SearchPostsRequest) ([]*Post, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	return Search(all, req.Title, req.Content), nil
}

// GetPost looks a post up by id
func (s *postService) GetPost(ctx context.Context, id int64) (*Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}
	return post, nil
}

// UpdatePost merges fields onto an existing post
func (s *postService) UpdatePost(ctx context.Context, id int64, fields Fields) (*Post, error) {
	post, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	return post, nil
}

// DeletePost removes a post
func (s *postService) DeletePost(ctx context.Context, id int64) (*Post, error) {
	post, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	return post, nil
}

// normalizeListRequest applies defaults and validates the listing parameters.
// Direction is only checked when a sort field is given.
func (s *postService) normalizeListRequest(req ListPostsRequest) (ListPostsRequest, error) {
	if req.Page == 0 {
		req.Page = DefaultPage
	}
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}
	if req.Page < 1 {
		return req, NewValidationError("page", "must be a positive integer")
	}
	if req.Limit < 1 {
		return req, NewValidationError("limit", "must be a positive integer")
	}

	if req.Sort == "" {
		return req, nil
	}
	if !IsValidSortField(req.Sort) {
		return req, NewValidationError("sort", "Invalid sort field. Use 'title' or 'content'.")
	}

	req.Direction = strings.ToLower(strings.TrimSpace(req.Direction))
	if req.Direction == "" {
		req.Direction = DirectionAsc
	}
	if !IsValidDirection(req.Direction) {
		return req, NewValidationError("direction", "Invalid direction. Use 'asc' or 'desc'.")
	}
	return req, nil
}
