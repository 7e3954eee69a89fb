package models

import "time"

// Post represents a blog post.
//
// Comments is not part of the stored record. Stores leave it nil and the
// read paths fill it from the comment collection.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Comments  []Comment `json:"comments"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostInput carries the client-writable fields of a post.
type PostInput struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// CommentInput carries the client-writable fields of a comment.
type CommentInput struct {
	Author  string `json:"author" validate:"required"`
	Content string `json:"content" validate:"required"`
}
