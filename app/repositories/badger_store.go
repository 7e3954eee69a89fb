package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"simpleblog/app/models"

	"github.com/dgraph-io/badger/v4"
)

// postRecord is what BadgerStore keeps under a post key. Comments are
// stored under their own keys and joined on read.
type postRecord struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func (r postRecord) toModel() models.Post {
	return models.Post{ID: r.ID, Title: r.Title, Body: r.Body, CreatedAt: r.CreatedAt}
}

// BadgerStore implements Store on top of an in-memory BadgerDB instance.
//
// Comments live under comment:<post>:<comment>, so a post's comments form
// one contiguous key range in id order and a comment looked up through the
// wrong post simply does not exist.
type BadgerStore struct {
	db *badger.DB
	// Writers take the mutex so concurrent transactions never hit ErrConflict.
	mutex sync.Mutex
	now   func() time.Time
}

// NewBadgerStore opens a fresh in-memory BadgerDB. Nothing touches disk.
func NewBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &BadgerStore{db: db, now: defaultClock}, nil
}

var _ Store = (*BadgerStore)(nil)

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) update(fn func(txn *badger.Txn) error) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.Update(fn)
}

// Post methods

func (s *BadgerStore) CreatePost(_ context.Context, title, body string) (models.Post, error) {
	var rec postRecord
	err := s.update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		rec = postRecord{ID: id, Title: title, Body: body, CreatedAt: s.now()}
		return putEntity(txn, postKey(id), rec)
	})
	if err != nil {
		return models.Post{}, err
	}
	return rec.toModel(), nil
}

func (s *BadgerStore) GetPost(_ context.Context, id int) (models.Post, error) {
	var rec postRecord
	err := s.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, postKey(id), &rec)
	})
	if err != nil {
		return models.Post{}, err
	}
	return rec.toModel(), nil
}

func (s *BadgerStore) UpdatePost(_ context.Context, id int, title, body string) (models.Post, error) {
	var post models.Post
	err := s.update(func(txn *badger.Txn) error {
		var rec postRecord
		if err := getEntity(txn, postKey(id), &rec); err != nil {
			return err
		}
		rec.Title = title
		rec.Body = body
		if err := putEntity(txn, postKey(id), rec); err != nil {
			return err
		}

		comments, err := listCommentsTxn(txn, id)
		if err != nil {
			return err
		}
		post = rec.toModel()
		post.AttachComments(comments)
		return nil
	})
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func (s *BadgerStore) DeletePost(_ context.Context, id int) (bool, error) {
	err := s.update(func(txn *badger.Txn) error {
		if _, err := txn.Get(postKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Collect first; deleting while the iterator is open is not allowed.
		var keys [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		prefix := commentPrefix(id)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return txn.Delete(postKey(id))
	})
	return deleted(err)
}

func (s *BadgerStore) ListPosts(_ context.Context, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		posts, err = listPostsTxn(txn, offset, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *BadgerStore) CountPosts(_ context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Comment methods

func (s *BadgerStore) ListComments(_ context.Context, postID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		comments, err = listCommentsTxn(txn, postID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *BadgerStore) CreateComment(_ context.Context, postID int, author, content string) (models.Comment, error) {
	var comment models.Comment
	err := s.update(func(txn *badger.Txn) error {
		if _, err := txn.Get(postKey(postID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}

		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment = models.Comment{ID: id, PostID: postID, Author: author, Content: content}
		comment.BeforeCreate(s.now())
		return putEntity(txn, commentKey(postID, id), comment)
	})
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

func (s *BadgerStore) GetComment(_ context.Context, postID, commentID int) (models.Comment, error) {
	var comment models.Comment
	err := s.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, commentKey(postID, commentID), &comment)
	})
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

func (s *BadgerStore) UpdateComment(_ context.Context, postID, commentID int, author, content string) (models.Comment, error) {
	var comment models.Comment
	err := s.update(func(txn *badger.Txn) error {
		key := commentKey(postID, commentID)
		if err := getEntity(txn, key, &comment); err != nil {
			return err
		}
		comment.Apply(models.CommentInput{Author: author, Content: content})
		return putEntity(txn, key, comment)
	})
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

func (s *BadgerStore) DeleteComment(_ context.Context, postID, commentID int) (bool, error) {
	err := s.update(func(txn *badger.Txn) error {
		key := commentKey(postID, commentID)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
	return deleted(err)
}

// Join reads

func (s *BadgerStore) GetPostWithComments(_ context.Context, id int) (models.Post, error) {
	var post models.Post
	err := s.db.View(func(txn *badger.Txn) error {
		var rec postRecord
		if err := getEntity(txn, postKey(id), &rec); err != nil {
			return err
		}
		comments, err := listCommentsTxn(txn, id)
		if err != nil {
			return err
		}
		post = rec.toModel()
		post.AttachComments(comments)
		return nil
	})
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func (s *BadgerStore) ListPostsWithComments(_ context.Context, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		posts, err = listPostsTxn(txn, offset, limit)
		if err != nil {
			return err
		}
		for i := range posts {
			comments, err := listCommentsTxn(txn, posts[i].ID)
			if err != nil {
				return err
			}
			posts[i].AttachComments(comments)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Transaction helpers

func getEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}

func putEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

func listPostsTxn(txn *badger.Txn, offset, limit int) ([]models.Post, error) {
	posts := []models.Post{}
	if offset < 0 || limit <= 0 {
		return posts, nil
	}

	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	count := 0
	prefix := []byte(PostKeyPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if count < offset {
			count++
			continue
		}
		if len(posts) >= limit {
			break
		}

		var rec postRecord
		err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &rec)
		})
		if err != nil {
			return nil, err
		}
		posts = append(posts, rec.toModel())
		count++
	}
	return posts, nil
}

func listCommentsTxn(txn *badger.Txn, postID int) ([]models.Comment, error) {
	comments := []models.Comment{}

	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	prefix := commentPrefix(postID)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var comment models.Comment
		err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// deleted converts a delete transaction result into the (found, err) pair.
func deleted(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
