package memory

import (
	"context"
	"slices"
	"sync"

	"Masterblog/internal/core/posts"
)

// PostRepository is the authoritative in-memory post collection.
// One lock guards both the slice and the id counter.
type PostRepository struct {
	posts  []*posts.Post
	nextID int64
	mu     sync.RWMutex
}

// NewPostRepository creates an empty repository whose first id is 1
func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make([]*posts.Post, 0),
		nextID: 1,
	}
}

// Create assigns the next id and appends the post
func (r *PostRepository) Create(ctx context.Context, fields posts.Fields) (*posts.Post, error) {
	if err := posts.ValidateCreateFields(fields); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	post, err := posts.NewPost(r.nextID, fields)
	if err != nil {
		return nil, err
	}
	r.nextID++
	r.posts = append(r.posts, post)

	return post.Clone(), nil
}

// List returns a copy of every live post in insertion order
func (r *PostRepository) List(ctx context.Context) ([]*posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]*posts.Post, len(r.posts))
	for i, p := range r.posts {
		snapshot[i] = p.Clone()
	}
	return snapshot, nil
}

// GetByID looks a post up by id
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, posts.NewNotFoundError(id)
	}
	return r.posts[i].Clone(), nil
}

// Update merges fields onto the stored post. The merge is applied to a copy
// and swapped in only on success, so a rejected update changes nothing.
func (r *PostRepository) Update(ctx context.Context, id int64, fields posts.Fields) (*posts.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, posts.NewNotFoundError(id)
	}

	updated := r.posts[i].Clone()
	if err := updated.Apply(fields); err != nil {
		return nil, err
	}
	updated.ID = id
	r.posts[i] = updated

	return updated.Clone(), nil
}

// Delete removes the post and returns it
func (r *PostRepository) Delete(ctx context.Context, id int64) (*posts.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, posts.NewNotFoundError(id)
	}

	removed := r.posts[i]
	r.posts = slices.Delete(r.posts, i, i+1)
	return removed, nil
}

// Len returns the number of live posts
func (r *PostRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts)
}

// indexOf must be called with mu held
func (r *PostRepository) indexOf(id int64) int {
	for i, p := range r.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
