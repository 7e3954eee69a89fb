package repositories

import (
	"context"
	"errors"

	"simpleblog/app/models"
)

// ErrNotFound reports that a requested id has no live record, or that a
// comment id exists but belongs to a different post.
var ErrNotFound = errors.New("record not found")

// Store is the single source of truth for posts and comments. It owns id
// allocation and enforces that every comment references a live post.
//
// Implementations perform no input validation. All mutations are serialised
// and a post delete removes the post and its comments in one step.
type Store interface {
	CreatePost(ctx context.Context, title, body string) (models.Post, error)
	GetPost(ctx context.Context, id int) (models.Post, error)
	// UpdatePost returns the updated post with Comments read in the same step.
	UpdatePost(ctx context.Context, id int, title, body string) (models.Post, error)
	DeletePost(ctx context.Context, id int) (bool, error)
	// ListPosts returns live posts ordered by id, starting at offset.
	ListPosts(ctx context.Context, offset, limit int) ([]models.Post, error)
	CountPosts(ctx context.Context) (int, error)

	// ListComments never fails for an unknown post; it returns an empty list.
	ListComments(ctx context.Context, postID int) ([]models.Comment, error)
	CreateComment(ctx context.Context, postID int, author, content string) (models.Comment, error)
	GetComment(ctx context.Context, postID, commentID int) (models.Comment, error)
	UpdateComment(ctx context.Context, postID, commentID int, author, content string) (models.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID int) (bool, error)

	// Join reads return posts with Comments filled from one consistent view.
	GetPostWithComments(ctx context.Context, id int) (models.Post, error)
	ListPostsWithComments(ctx context.Context, offset, limit int) ([]models.Post, error)

	Close() error
}
