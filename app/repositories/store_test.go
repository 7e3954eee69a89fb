package repositories

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"simpleblog/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFactory func(t *testing.T) Store

func newMemory(t *testing.T) Store {
	return NewMemoryStore()
}

func newBadger(t *testing.T) Store {
	s, err := NewBadgerStore()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, newMemory)
}

func TestBadgerStore(t *testing.T) {
	runStoreContract(t, newBadger)
}

func runStoreContract(t *testing.T, newStore storeFactory) {
	ctx := context.Background()

	t.Run("create and get post", func(t *testing.T) {
		s := newStore(t)

		post, err := s.CreatePost(ctx, "T", "B")
		require.NoError(t, err)
		assert.Equal(t, 1, post.ID)
		assert.False(t, post.CreatedAt.IsZero())

		got, err := s.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "T", got.Title)
		assert.Equal(t, "B", got.Body)
		assert.True(t, post.CreatedAt.Equal(got.CreatedAt))

		joined, err := s.GetPostWithComments(ctx, post.ID)
		require.NoError(t, err)
		assert.NotNil(t, joined.Comments)
		assert.Empty(t, joined.Comments)
	})

	t.Run("get missing post", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetPost(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.GetPostWithComments(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update post keeps id and created_at", func(t *testing.T) {
		s := newStore(t)

		post, err := s.CreatePost(ctx, "Original Title", "Original body")
		require.NoError(t, err)

		updated, err := s.UpdatePost(ctx, post.ID, "Updated Title", "Updated body")
		require.NoError(t, err)
		assert.Equal(t, post.ID, updated.ID)
		assert.True(t, post.CreatedAt.Equal(updated.CreatedAt))
		assert.Equal(t, "Updated Title", updated.Title)

		got, err := s.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated body", got.Body)

		_, err = s.UpdatePost(ctx, 999, "x", "y")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update post returns its comments", func(t *testing.T) {
		s := newStore(t)

		post, _ := s.CreatePost(ctx, "T", "B")
		c, err := s.CreateComment(ctx, post.ID, "a", "c")
		require.NoError(t, err)

		updated, err := s.UpdatePost(ctx, post.ID, "T2", "B2")
		require.NoError(t, err)
		require.Len(t, updated.Comments, 1)
		assert.Equal(t, c.ID, updated.Comments[0].ID)

		// The stored record still carries no comments.
		got, err := s.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Comments)
	})

	t.Run("delete post reports existence", func(t *testing.T) {
		s := newStore(t)

		post, err := s.CreatePost(ctx, "T", "B")
		require.NoError(t, err)

		ok, err := s.DeletePost(ctx, post.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.DeletePost(ctx, post.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = s.GetPost(ctx, post.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ids are monotonic and never reused", func(t *testing.T) {
		s := newStore(t)

		p1, _ := s.CreatePost(ctx, "a", "a")
		p2, _ := s.CreatePost(ctx, "b", "b")
		c1, err := s.CreateComment(ctx, p1.ID, "x", "x")
		require.NoError(t, err)
		c2, err := s.CreateComment(ctx, p2.ID, "y", "y")
		require.NoError(t, err)

		_, err = s.DeletePost(ctx, p2.ID)
		require.NoError(t, err)
		_, err = s.DeleteComment(ctx, p1.ID, c1.ID)
		require.NoError(t, err)

		p3, err := s.CreatePost(ctx, "c", "c")
		require.NoError(t, err)
		c3, err := s.CreateComment(ctx, p3.ID, "z", "z")
		require.NoError(t, err)

		assert.Equal(t, []int{1, 2, 3}, []int{p1.ID, p2.ID, p3.ID})
		assert.Equal(t, []int{1, 2, 3}, []int{c1.ID, c2.ID, c3.ID})
	})

	t.Run("comment ids are global across posts", func(t *testing.T) {
		s := newStore(t)

		a, _ := s.CreatePost(ctx, "A", "A")
		b, _ := s.CreatePost(ctx, "B", "B")

		ca, err := s.CreateComment(ctx, a.ID, "x", "x")
		require.NoError(t, err)
		cb, err := s.CreateComment(ctx, b.ID, "y", "y")
		require.NoError(t, err)

		assert.Equal(t, 1, ca.ID)
		assert.Equal(t, 2, cb.ID)
		assert.Equal(t, b.ID, cb.PostID)
	})

	t.Run("create comment under missing post", func(t *testing.T) {
		s := newStore(t)

		_, err := s.CreateComment(ctx, 7, "x", "x")
		assert.ErrorIs(t, err, ErrNotFound)

		// The failed attempt must not consume a comment id.
		post, _ := s.CreatePost(ctx, "T", "B")
		c, err := s.CreateComment(ctx, post.ID, "x", "x")
		require.NoError(t, err)
		assert.Equal(t, 1, c.ID)
	})

	t.Run("comments are scoped to their post", func(t *testing.T) {
		s := newStore(t)

		a, _ := s.CreatePost(ctx, "A", "A")
		c, err := s.CreateComment(ctx, a.ID, "x", "x")
		require.NoError(t, err)
		b, _ := s.CreatePost(ctx, "B", "B")

		_, err = s.GetComment(ctx, b.ID, c.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.UpdateComment(ctx, b.ID, c.ID, "hijack", "hijack")
		assert.ErrorIs(t, err, ErrNotFound)

		ok, err := s.DeleteComment(ctx, b.ID, c.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := s.GetComment(ctx, a.ID, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "x", got.Author)
	})

	t.Run("update comment touches author and content only", func(t *testing.T) {
		s := newStore(t)

		post, _ := s.CreatePost(ctx, "T", "B")
		c, err := s.CreateComment(ctx, post.ID, "a", "b")
		require.NoError(t, err)

		updated, err := s.UpdateComment(ctx, post.ID, c.ID, "Updated Author", "Updated content")
		require.NoError(t, err)
		assert.Equal(t, c.ID, updated.ID)
		assert.Equal(t, post.ID, updated.PostID)
		assert.True(t, c.CreatedAt.Equal(updated.CreatedAt))

		got, err := s.GetComment(ctx, post.ID, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated Author", got.Author)
		assert.Equal(t, "Updated content", got.Content)
	})

	t.Run("list comments keeps insertion order", func(t *testing.T) {
		s := newStore(t)

		a, _ := s.CreatePost(ctx, "A", "A")
		b, _ := s.CreatePost(ctx, "B", "B")
		for i := 0; i < 12; i++ {
			target := a.ID
			if i%3 == 0 {
				target = b.ID
			}
			_, err := s.CreateComment(ctx, target, fmt.Sprintf("author %d", i), "c")
			require.NoError(t, err)
		}

		comments, err := s.ListComments(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, comments, 8)
		for i := 1; i < len(comments); i++ {
			assert.Less(t, comments[i-1].ID, comments[i].ID)
			assert.Equal(t, a.ID, comments[i].PostID)
		}

		joined, err := s.GetPostWithComments(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, comments, joined.Comments)
	})

	t.Run("list comments of unknown post is empty", func(t *testing.T) {
		s := newStore(t)

		comments, err := s.ListComments(ctx, 123)
		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})

	t.Run("delete post cascades to its comments", func(t *testing.T) {
		s := newStore(t)

		a, _ := s.CreatePost(ctx, "A", "A")
		b, _ := s.CreatePost(ctx, "B", "B")
		ca1, _ := s.CreateComment(ctx, a.ID, "x", "1")
		_, _ = s.CreateComment(ctx, a.ID, "x", "2")
		cb, _ := s.CreateComment(ctx, b.ID, "y", "3")

		ok, err := s.DeletePost(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		comments, err := s.ListComments(ctx, a.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)

		_, err = s.GetComment(ctx, a.ID, ca1.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		// Other posts are untouched.
		got, err := s.GetComment(ctx, b.ID, cb.ID)
		require.NoError(t, err)
		assert.Equal(t, "3", got.Content)
	})

	t.Run("delete comment", func(t *testing.T) {
		s := newStore(t)

		post, _ := s.CreatePost(ctx, "T", "B")
		c1, _ := s.CreateComment(ctx, post.ID, "x", "1")
		c2, _ := s.CreateComment(ctx, post.ID, "x", "2")

		ok, err := s.DeleteComment(ctx, post.ID, c1.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.DeleteComment(ctx, post.ID, c1.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		comments, err := s.ListComments(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, c2.ID, comments[0].ID)
	})

	t.Run("pagination over insertion order", func(t *testing.T) {
		s := newStore(t)

		for i := 1; i <= 12; i++ {
			_, err := s.CreatePost(ctx, fmt.Sprintf("post %d", i), "body")
			require.NoError(t, err)
		}

		count, err := s.CountPosts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 12, count)

		tests := []struct {
			offset, limit int
			want          []int
		}{
			{offset: 0, limit: 5, want: []int{1, 2, 3, 4, 5}},
			{offset: 5, limit: 5, want: []int{6, 7, 8, 9, 10}},
			{offset: 10, limit: 5, want: []int{11, 12}},
			{offset: 15, limit: 5, want: []int{}},
			{offset: 0, limit: 50, want: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
			{offset: math.MaxInt, limit: 5, want: []int{}},
			{offset: math.MaxInt - 1, limit: math.MaxInt, want: []int{}},
			{offset: -1, limit: 5, want: []int{}},
		}
		for _, tt := range tests {
			posts, err := s.ListPosts(ctx, tt.offset, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, postIDs(posts), "offset=%d limit=%d", tt.offset, tt.limit)
		}
	})

	t.Run("pagination skips deleted posts", func(t *testing.T) {
		s := newStore(t)

		for i := 1; i <= 6; i++ {
			_, err := s.CreatePost(ctx, "t", "b")
			require.NoError(t, err)
		}
		_, err := s.DeletePost(ctx, 2)
		require.NoError(t, err)

		posts, err := s.ListPosts(ctx, 0, 3)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3, 4}, postIDs(posts))

		count, err := s.CountPosts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, count)
	})

	t.Run("list posts with comments", func(t *testing.T) {
		s := newStore(t)

		a, _ := s.CreatePost(ctx, "A", "A")
		b, _ := s.CreatePost(ctx, "B", "B")
		_, _ = s.CreateComment(ctx, b.ID, "x", "x")

		posts, err := s.ListPostsWithComments(ctx, 0, 5)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, a.ID, posts[0].ID)
		assert.NotNil(t, posts[0].Comments)
		assert.Empty(t, posts[0].Comments)
		require.Len(t, posts[1].Comments, 1)
		assert.Equal(t, b.ID, posts[1].Comments[0].PostID)
	})

	t.Run("stored posts do not carry comments", func(t *testing.T) {
		s := newStore(t)

		post, _ := s.CreatePost(ctx, "T", "B")
		_, _ = s.CreateComment(ctx, post.ID, "x", "x")

		got, err := s.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Comments)
	})

	t.Run("concurrent writers get unique ids", func(t *testing.T) {
		s := newStore(t)

		root, err := s.CreatePost(ctx, "root", "root")
		require.NoError(t, err)

		const workers = 8
		const perWorker = 25

		var wg sync.WaitGroup
		var mu sync.Mutex
		postSeen := map[int]bool{}
		commentSeen := map[int]bool{}

		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					p, err := s.CreatePost(ctx, "t", "b")
					assert.NoError(t, err)
					c, err := s.CreateComment(ctx, root.ID, "a", "c")
					assert.NoError(t, err)
					_, err = s.ListPostsWithComments(ctx, 0, 5)
					assert.NoError(t, err)

					mu.Lock()
					assert.False(t, postSeen[p.ID], "post id %d reused", p.ID)
					assert.False(t, commentSeen[c.ID], "comment id %d reused", c.ID)
					postSeen[p.ID] = true
					commentSeen[c.ID] = true
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Len(t, postSeen, workers*perWorker)
		assert.Len(t, commentSeen, workers*perWorker)

		comments, err := s.ListComments(ctx, root.ID)
		require.NoError(t, err)
		assert.Len(t, comments, workers*perWorker)
	})

	t.Run("cascade is atomic for join readers", func(t *testing.T) {
		s := newStore(t)

		const comments = 20
		post, _ := s.CreatePost(ctx, "T", "B")
		for i := 0; i < comments; i++ {
			_, err := s.CreateComment(ctx, post.ID, "a", "c")
			require.NoError(t, err)
		}

		const readers = 4
		start := make(chan struct{})
		var ready, wg sync.WaitGroup
		ready.Add(readers)
		wg.Add(readers)
		var mu sync.Mutex
		sawGone := 0

		for r := 0; r < readers; r++ {
			go func() {
				defer wg.Done()
				ready.Done()
				<-start
				// Read until the delete is visible. Every observation is
				// either the whole post or nothing at all.
				for {
					got, err := s.GetPostWithComments(ctx, post.ID)
					if err != nil {
						assert.ErrorIs(t, err, ErrNotFound)
						mu.Lock()
						sawGone++
						mu.Unlock()
						return
					}
					assert.Len(t, got.Comments, comments)

					page, err := s.ListPostsWithComments(ctx, 0, 5)
					assert.NoError(t, err)
					for _, p := range page {
						assert.Len(t, p.Comments, comments)
					}
				}
			}()
		}

		ready.Wait()
		close(start)
		ok, err := s.DeletePost(ctx, post.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		wg.Wait()

		assert.Equal(t, readers, sawGone)
		left, err := s.ListComments(ctx, post.ID)
		require.NoError(t, err)
		assert.Empty(t, left)
	})
}

func postIDs(posts []models.Post) []int {
	ids := make([]int, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}
