package repositories

import (
	"context"
	"slices"
	"sync"
	"time"

	"simpleblog/app/models"
)

// MemoryStore implements Store with plain maps guarded by one RWMutex.
type MemoryStore struct {
	mutex sync.RWMutex

	posts     map[int]models.Post
	postOrder []int

	comments map[int]models.Comment
	byPost   map[int][]int

	nextPostID    int
	nextCommentID int

	now func() time.Time
}

// NewMemoryStore creates an empty MemoryStore. Both counters start at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:         make(map[int]models.Post),
		comments:      make(map[int]models.Comment),
		byPost:        make(map[int][]int),
		nextPostID:    1,
		nextCommentID: 1,
		now:           defaultClock,
	}
}

var _ Store = (*MemoryStore)(nil)

// Post methods

func (s *MemoryStore) CreatePost(_ context.Context, title, body string) (models.Post, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	post := models.Post{ID: s.nextPostID, Title: title, Body: body}
	post.BeforeCreate(s.now())
	s.nextPostID++

	s.posts[post.ID] = post
	s.postOrder = append(s.postOrder, post.ID)
	return post, nil
}

func (s *MemoryStore) GetPost(_ context.Context, id int) (models.Post, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	return post, nil
}

func (s *MemoryStore) UpdatePost(_ context.Context, id int, title, body string) (models.Post, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	post.Apply(models.PostInput{Title: title, Body: body})
	s.posts[id] = post
	post.AttachComments(s.commentsLocked(id))
	return post, nil
}

func (s *MemoryStore) DeletePost(_ context.Context, id int) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.posts[id]; !ok {
		return false, nil
	}
	for _, cid := range s.byPost[id] {
		delete(s.comments, cid)
	}
	delete(s.byPost, id)
	delete(s.posts, id)
	s.postOrder = removeID(s.postOrder, id)
	return true, nil
}

func (s *MemoryStore) ListPosts(_ context.Context, offset, limit int) ([]models.Post, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.pageLocked(offset, limit), nil
}

func (s *MemoryStore) CountPosts(_ context.Context) (int, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.postOrder), nil
}

// Comment methods

func (s *MemoryStore) ListComments(_ context.Context, postID int) ([]models.Comment, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.commentsLocked(postID), nil
}

func (s *MemoryStore) CreateComment(_ context.Context, postID int, author, content string) (models.Comment, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return models.Comment{}, ErrNotFound
	}

	comment := models.Comment{ID: s.nextCommentID, PostID: postID, Author: author, Content: content}
	comment.BeforeCreate(s.now())
	s.nextCommentID++

	s.comments[comment.ID] = comment
	s.byPost[postID] = append(s.byPost[postID], comment.ID)
	return comment, nil
}

func (s *MemoryStore) GetComment(_ context.Context, postID, commentID int) (models.Comment, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.commentLocked(postID, commentID)
}

func (s *MemoryStore) UpdateComment(_ context.Context, postID, commentID int, author, content string) (models.Comment, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	comment, err := s.commentLocked(postID, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	comment.Apply(models.CommentInput{Author: author, Content: content})
	s.comments[commentID] = comment
	return comment, nil
}

func (s *MemoryStore) DeleteComment(_ context.Context, postID, commentID int) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, err := s.commentLocked(postID, commentID); err != nil {
		return false, nil
	}
	delete(s.comments, commentID)
	s.byPost[postID] = removeID(s.byPost[postID], commentID)
	return true, nil
}

// Join reads

func (s *MemoryStore) GetPostWithComments(_ context.Context, id int) (models.Post, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	post.AttachComments(s.commentsLocked(id))
	return post, nil
}

func (s *MemoryStore) ListPostsWithComments(_ context.Context, offset, limit int) ([]models.Post, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	posts := s.pageLocked(offset, limit)
	for i := range posts {
		posts[i].AttachComments(s.commentsLocked(posts[i].ID))
	}
	return posts, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// The helpers below expect the caller to hold the mutex.

func (s *MemoryStore) pageLocked(offset, limit int) []models.Post {
	if offset < 0 || limit <= 0 || offset >= len(s.postOrder) {
		return []models.Post{}
	}
	end := offset + min(limit, len(s.postOrder)-offset)

	out := make([]models.Post, 0, end-offset)
	for _, id := range s.postOrder[offset:end] {
		out = append(out, s.posts[id])
	}
	return out
}

func (s *MemoryStore) commentsLocked(postID int) []models.Comment {
	ids := s.byPost[postID]
	out := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.comments[id])
	}
	return out
}

func (s *MemoryStore) commentLocked(postID, commentID int) (models.Comment, error) {
	comment, ok := s.comments[commentID]
	if !ok || comment.PostID != postID {
		return models.Comment{}, ErrNotFound
	}
	return comment, nil
}

func removeID(ids []int, id int) []int {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}
