package services

import (
	"context"

	"simpleblog/app/models"
	"simpleblog/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	store repositories.Store
}

// NewPostService creates a new PostService
func NewPostService(store repositories.Store) *PostService {
	return &PostService{store: store}
}

// CreatePost validates the input and stores a new post.
func (s *PostService) CreatePost(ctx context.Context, in models.PostInput) (models.Post, error) {
	if err := in.Validate(); err != nil {
		return models.Post{}, invalid(err)
	}

	post, err := s.store.CreatePost(ctx, in.Title, in.Body)
	if err != nil {
		return models.Post{}, storeError(err, ErrPostNotFound)
	}
	post.AttachComments(nil)
	return post, nil
}

// GetPost retrieves a post by ID with its comments
func (s *PostService) GetPost(ctx context.Context, id int) (models.Post, error) {
	post, err := s.store.GetPostWithComments(ctx, id)
	if err != nil {
		return models.Post{}, storeError(err, ErrPostNotFound)
	}
	return post, nil
}

// ListPosts returns one page of posts, each with its comments.
func (s *PostService) ListPosts(ctx context.Context, page models.PageRequest) ([]models.Post, error) {
	if err := page.Validate(); err != nil {
		return nil, invalid(err)
	}

	posts, err := s.store.ListPostsWithComments(ctx, page.Offset(), page.Limit)
	if err != nil {
		return nil, storeError(err, ErrPostNotFound)
	}
	return posts, nil
}

// UpdatePost replaces title and body of an existing post and returns it
// with its comments as of the update.
func (s *PostService) UpdatePost(ctx context.Context, id int, in models.PostInput) (models.Post, error) {
	if err := in.Validate(); err != nil {
		return models.Post{}, invalid(err)
	}

	post, err := s.store.UpdatePost(ctx, id, in.Title, in.Body)
	if err != nil {
		return models.Post{}, storeError(err, ErrPostNotFound)
	}
	return post, nil
}

// DeletePost deletes a post and all its comments
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	ok, err := s.store.DeletePost(ctx, id)
	if err != nil {
		return storeError(err, ErrPostNotFound)
	}
	if !ok {
		return ErrPostNotFound
	}
	return nil
}
