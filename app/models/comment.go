package models

import "time"

// Validate checks that author and content are present.
func (in CommentInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return describe(err)
	}
	return nil
}

// BeforeCreate stamps the creation time if it is not set yet.
func (c *Comment) BeforeCreate(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
}

// Apply copies the writable fields of in onto the comment.
// ID, PostID and CreatedAt are never touched.
func (c *Comment) Apply(in CommentInput) {
	c.Author = in.Author
	c.Content = in.Content
}
