package services

import (
	"context"

	"simpleblog/app/models"
	"simpleblog/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	store repositories.Store
}

// NewCommentService creates a new CommentService
func NewCommentService(store repositories.Store) *CommentService {
	return &CommentService{store: store}
}

// CreateComment validates the input, then attaches a comment to a live post.
func (s *CommentService) CreateComment(ctx context.Context, postID int, in models.CommentInput) (models.Comment, error) {
	if err := in.Validate(); err != nil {
		return models.Comment{}, invalid(err)
	}

	comment, err := s.store.CreateComment(ctx, postID, in.Author, in.Content)
	if err != nil {
		return models.Comment{}, storeError(err, ErrPostNotFound)
	}
	return comment, nil
}

// ListComments retrieves all comments for a post. Unlike the Store, an
// unknown post is an error here.
func (s *CommentService) ListComments(ctx context.Context, postID int) ([]models.Comment, error) {
	post, err := s.store.GetPostWithComments(ctx, postID)
	if err != nil {
		return nil, storeError(err, ErrPostNotFound)
	}
	return post.Comments, nil
}

func (s *CommentService) GetComment(ctx context.Context, postID, commentID int) (models.Comment, error) {
	comment, err := s.store.GetComment(ctx, postID, commentID)
	if err != nil {
		return models.Comment{}, storeError(err, ErrCommentNotFound)
	}
	return comment, nil
}

// UpdateComment replaces author and content of a comment under postID.
func (s *CommentService) UpdateComment(ctx context.Context, postID, commentID int, in models.CommentInput) (models.Comment, error) {
	if err := in.Validate(); err != nil {
		return models.Comment{}, invalid(err)
	}

	comment, err := s.store.UpdateComment(ctx, postID, commentID, in.Author, in.Content)
	if err != nil {
		return models.Comment{}, storeError(err, ErrCommentNotFound)
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, postID, commentID int) error {
	ok, err := s.store.DeleteComment(ctx, postID, commentID)
	if err != nil {
		return storeError(err, ErrCommentNotFound)
	}
	if !ok {
		return ErrCommentNotFound
	}
	return nil
}
