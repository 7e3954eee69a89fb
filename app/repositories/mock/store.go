package mock

import (
	"context"

	"simpleblog/app/models"
	"simpleblog/app/repositories"

	"github.com/stretchr/testify/mock"
)

// Store is a testify mock of repositories.Store.
type Store struct {
	mock.Mock
}

var _ repositories.Store = (*Store)(nil)

func (m *Store) CreatePost(ctx context.Context, title, body string) (models.Post, error) {
	args := m.Called(ctx, title, body)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *Store) GetPost(ctx context.Context, id int) (models.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *Store) UpdatePost(ctx context.Context, id int, title, body string) (models.Post, error) {
	args := m.Called(ctx, id, title, body)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *Store) DeletePost(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Store) ListPosts(ctx context.Context, offset, limit int) ([]models.Post, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *Store) CountPosts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *Store) ListComments(ctx context.Context, postID int) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *Store) CreateComment(ctx context.Context, postID int, author, content string) (models.Comment, error) {
	args := m.Called(ctx, postID, author, content)
	return args.Get(0).(models.Comment), args.Error(1)
}

func (m *Store) GetComment(ctx context.Context, postID, commentID int) (models.Comment, error) {
	args := m.Called(ctx, postID, commentID)
	return args.Get(0).(models.Comment), args.Error(1)
}

func (m *Store) UpdateComment(ctx context.Context, postID, commentID int, author, content string) (models.Comment, error) {
	args := m.Called(ctx, postID, commentID, author, content)
	return args.Get(0).(models.Comment), args.Error(1)
}

func (m *Store) DeleteComment(ctx context.Context, postID, commentID int) (bool, error) {
	args := m.Called(ctx, postID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *Store) GetPostWithComments(ctx context.Context, id int) (models.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *Store) ListPostsWithComments(ctx context.Context, offset, limit int) ([]models.Post, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *Store) Close() error {
	return m.Called().Error(0)
}
