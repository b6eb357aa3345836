// internal/domain/models/blog.go
package models

// Blog is a blog post as returned by GET /api/blogs. Content is
// backend-authored HTML and must be sanitized before display.
type Blog struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Content  string      `json:"content"`
	MinsRead string      `json:"mins_read,omitempty"`
	Images   []BlogImage `json:"images,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// BlogImage is an image attached to a blog post.
type BlogImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
