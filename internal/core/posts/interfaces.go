package posts

import "context"

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost validates the mandatory fields and stores a new post with a fresh id
	CreatePost(ctx context.Context, fields Fields) (*Post, error)

	// ListPosts returns a snapshot of the collection, optionally sorted, then paginated
	ListPosts(ctx context.Context, req ListPostsRequest) ([]*Post, error)

	// SearchPosts returns the posts whose title or content contains the queries.
	// An empty result is not an error.
	SearchPosts(ctx context.Context, req SearchPostsRequest) ([]*Post, error)

	// GetPost returns the live post with id; ErrNotFound when there is none
	GetPost(ctx context.Context, id int64) (*Post, error)

	// UpdatePost merges fields onto an existing post, keeping its id
	UpdatePost(ctx context.Context, id int64, fields Fields) (*Post, error)

	// DeletePost removes a post and returns it
	DeletePost(ctx context.Context, id int64) (*Post, error)
}

// Repository defines the data access interface for posts.
// Implementations must serialize mutations so ids are never handed out twice
// and List never observes a half-applied write.
type Repository interface {
	// Create assigns the next id and appends the post.
	// Returns a ValidationError if title or content is missing.
	Create(ctx context.Context, fields Fields) (*Post, error)

	// List returns a copy of all live posts in insertion order
	List(ctx context.Context) ([]*Post, error)

	// GetByID returns ErrNotFound when the id is unknown
	GetByID(ctx context.Context, id int64) (*Post, error)

	// Update merges fields onto the stored post; ErrNotFound when the id is unknown
	Update(ctx context.Context, id int64, fields Fields) (*Post, error)

	// Delete removes the post; ErrNotFound when the id is unknown
	Delete(ctx context.Context, id int64) (*Post, error)
}
