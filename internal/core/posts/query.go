package posts

import (
	"slices"
	"strings"
)

// Sort fields and directions accepted by ListPosts
const (
	SortTitle   = FieldTitle
	SortContent = FieldContent

	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// Pagination defaults for ListPosts
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// IsValidSortField reports whether posts can be sorted by field
func IsValidSortField(field string) bool {
	return field == SortTitle || field == SortContent
}

// IsValidDirection reports whether direction is asc or desc
func IsValidDirection(direction string) bool {
	return direction == DirectionAsc || direction == DirectionDesc
}

// Search returns the posts whose title contains titleQuery or whose content
// contains contentQuery, ignoring case. An empty query never matches, so two
// empty queries yield no posts. Input order is preserved.
func Search(posts []*Post, titleQuery, contentQuery string) []*Post {
	titleQuery = strings.ToLower(titleQuery)
	contentQuery = strings.ToLower(contentQuery)

	matches := make([]*Post, 0)
	for _, p := range posts {
		titleMatch := titleQuery != "" && strings.Contains(strings.ToLower(p.Title), titleQuery)
		contentMatch := contentQuery != "" && strings.Contains(strings.ToLower(p.Content), contentQuery)
		if titleMatch || contentMatch {
			matches = append(matches, p)
		}
	}
	return matches
}

// Sort returns a new slice ordered lexicographically by field.
// The ascending order is stable; desc is its exact reverse.
// The input slice is not modified.
func Sort(posts []*Post, field, direction string) []*Post {
	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, func(a, b *Post) int {
		return strings.Compare(a.Field(field), b.Field(field))
	})
	if direction == DirectionDesc {
		slices.Reverse(sorted)
	}
	return sorted
}

// Paginate returns the 1-indexed page of at most limit posts.
// A page past the end, or a non-positive page or limit, yields an empty slice.
func Paginate(posts []*Post, page, limit int) []*Post {
	if page < 1 || limit < 1 {
		return []*Post{}
	}
	start := (page - 1) * limit
	// overflow on absurd page numbers lands here too
	if start < 0 || start >= len(posts) {
		return []*Post{}
	}
	end := start + limit
	if end > len(posts) || end < start {
		end = len(posts)
	}
	return posts[start:end]
}
