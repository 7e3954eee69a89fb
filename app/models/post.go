package models

import "time"

// Validate checks that title and body are present.
func (in PostInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return describe(err)
	}
	return nil
}

// BeforeCreate stamps the creation time if it is not set yet.
func (p *Post) BeforeCreate(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
}

// Apply copies the writable fields of in onto the post.
func (p *Post) Apply(in PostInput) {
	p.Title = in.Title
	p.Body = in.Body
}

// AttachComments sets the joined comment list. A nil list becomes empty so
// the post always serialises with a "comments" array.
func (p *Post) AttachComments(comments []Comment) {
	if comments == nil {
		comments = []Comment{}
	}
	p.Comments = comments
}
