package posts

import (
	"encoding/json"
	"maps"
)

// Field names with special meaning on a post
const (
	FieldID      = "id"
	FieldTitle   = "title"
	FieldContent = "content"
)

// Fields is the open set of client-supplied fields for a post.
// Values are kept verbatim as decoded from the request body.
type Fields map[string]interface{}

// Post is the single stored entity.
// Title and Content are mandatory; any other client field lives in Extra
// and is serialized flat alongside them.
type Post struct {
	Extra   Fields `json:"-"`
	Title   string `json:"title"`
	Content string `json:"content"`
	ID      int64  `json:"id"`
}

// Field returns the string value used for sorting and searching
func (p *Post) Field(name string) string {
	switch name {
	case FieldTitle:
		return p.Title
	case FieldContent:
		return p.Content
	}
	return ""
}

// Clone returns a copy that shares no mutable state with p
func (p *Post) Clone() *Post {
	c := *p
	if p.Extra != nil {
		c.Extra = maps.Clone(p.Extra)
	}
	return &c
}

// MarshalJSON writes the post as a flat object: extra fields first, then the
// mandatory ones so a client can never shadow id/title/content.
func (p *Post) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Extra)+3)
	for k, v := range p.Extra {
		out[k] = v
	}
	out[FieldID] = p.ID
	out[FieldTitle] = p.Title
	out[FieldContent] = p.Content
	return json.Marshal(out)
}

// NewPost builds a post from validated fields. The id field, if present, is ignored.
func NewPost(id int64, fields Fields) (*Post, error) {
	p := &Post{ID: id}
	if err := p.Apply(fields); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply merges fields onto the post. Same-named values are overwritten,
// unspecified fields are retained and the id is never changed.
// On error the post is left untouched.
func (p *Post) Apply(fields Fields) error {
	title, content := p.Title, p.Content
	if v, ok := fields[FieldTitle]; ok {
		s, isString := v.(string)
		if !isString {
			return NewValidationError(FieldTitle, "must be a string")
		}
		title = s
	}
	if v, ok := fields[FieldContent]; ok {
		s, isString := v.(string)
		if !isString {
			return NewValidationError(FieldContent, "must be a string")
		}
		content = s
	}

	p.Title, p.Content = title, content
	for k, v := range fields {
		switch k {
		case FieldID, FieldTitle, FieldContent:
			continue
		}
		if p.Extra == nil {
			p.Extra = make(Fields)
		}
		p.Extra[k] = v
	}
	return nil
}

// invalidCreateMessage is the client-facing text of every create validation failure
const invalidCreateMessage = "Invalid POST data, 'title' and 'content' fields are mandatory"

// ValidateCreateFields checks that both mandatory fields are present and are strings.
// Field names the first offending key.
func ValidateCreateFields(fields Fields) error {
	for _, name := range []string{FieldTitle, FieldContent} {
		v, ok := fields[name]
		if !ok {
			return NewValidationError(name, invalidCreateMessage)
		}
		if _, isString := v.(string); !isString {
			return NewValidationError(name, invalidCreateMessage)
		}
	}
	return nil
}

// CreatePostResponse is returned by POST /api/posts.
// The "posts" key is kept for compatibility with existing clients.
type CreatePostResponse struct {
	Post    *Post  `json:"posts"`
	Message string `json:"message"`
}

// UpdatePostResponse is returned by PUT /api/posts/{id}
type UpdatePostResponse struct {
	Post    *Post  `json:"post"`
	Message string `json:"message"`
}

// DeletePostResponse is returned by DELETE /api/posts/{id}
type DeletePostResponse struct {
	Message string `json:"message"`
}

// SearchMissResponse is returned with 404 when a search matches nothing
type SearchMissResponse struct {
	Message string  `json:"message"`
	Post    []*Post `json:"post"`
}
