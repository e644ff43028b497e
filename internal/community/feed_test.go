package community

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/content"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/overlay"
)

type canonicalFetcher struct {
	posts []Post
	err   error
}

func (c *canonicalFetcher) Fetch(_ context.Context, path string) ([]content.Row, error) {
	if c.err != nil {
		return nil, c.err
	}
	rows := make([]content.Row, 0, len(c.posts))
	for _, p := range c.posts {
		rows = append(rows, p.Row())
	}
	return rows, nil
}

func post(id int64, name, text string) Post {
	return Post{ID: id, Author: Author{Name: name}, Timestamp: "2h ago", Content: text, Comments: []Comment{}}
}

func ids(posts []Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestMergeCanonicalWins(t *testing.T) {
	canonical := []Post{post(1, "Aravind", "one"), post(2, "Priya", "two")}
	local := []Post{post(2, "Priya", "two (stale)"), post(3, "Karthik", "three")}

	merged := Merge(canonical, local)
	assert.Equal(t, []int64{3, 2, 1}, ids(merged))
	assert.Equal(t, "two", merged[1].Content)
}

func TestFeedLoadMergesOverlay(t *testing.T) {
	storage := overlay.NewMemoryStorage()
	require.NoError(t, overlay.NewStore[Post](storage, StorageKey).Save([]Post{
		post(2, "Priya", "two (stale)"),
		post(3, "Karthik", "three"),
	}))
	fetcher := &canonicalFetcher{posts: []Post{post(1, "Aravind", "one"), post(2, "Priya", "two")}}

	f := NewFeed(fetcher, storage)
	state, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, content.StateLoaded, state)

	posts := f.Posts()
	assert.Equal(t, []int64{3, 2, 1}, ids(posts))
	assert.Equal(t, "two", posts[1].Content)
}

func TestFeedLoadFailureKeepsPosts(t *testing.T) {
	fetcher := &canonicalFetcher{posts: []Post{post(1, "Aravind", "one")}}
	f := NewFeed(fetcher, overlay.NewMemoryStorage())
	_, err := f.Load(context.Background())
	require.NoError(t, err)

	fetcher.err = errors.New("connection refused")
	state, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, content.StateError, state)
	assert.Equal(t, content.StateError, f.State())
	assert.Equal(t, []int64{1}, ids(f.Posts()))
}

func TestFeedCorruptOverlay(t *testing.T) {
	storage := overlay.NewMemoryStorage()
	require.NoError(t, storage.SetItem(StorageKey, "[{"))
	f := NewFeed(&canonicalFetcher{}, storage)

	_, err := f.Load(context.Background())
	assert.Error(t, err)
}

func TestSubmitPersistsAcrossReload(t *testing.T) {
	storage := overlay.NewMemoryStorage()
	fetcher := &canonicalFetcher{posts: []Post{post(1700000000000, "Aravind", "welcome")}}

	f := NewFeed(fetcher, storage)
	f.now = fixedClock(1600000000000)
	_, err := f.Load(context.Background())
	require.NoError(t, err)

	_, err = f.Submit("  ", "hello")
	assert.ErrorIs(t, err, ErrEmptyPost)
	_, err = f.Submit("Nivetha M", "   ")
	assert.ErrorIs(t, err, ErrEmptyPost)
	assert.Len(t, f.Posts(), 1)

	p, err := f.Submit("Nivetha M", "First post!")
	require.NoError(t, err)
	assert.Greater(t, p.ID, int64(1700000000000))
	assert.Equal(t, "Just now", p.Timestamp)
	assert.Equal(t, "https://placehold.co/128x128/333333/FFFFFF?text=NM", p.Author.AvatarURL)

	next, err := f.Submit("Nivetha M", "Second post!")
	require.NoError(t, err)
	assert.Greater(t, next.ID, p.ID)
	assert.Len(t, f.Posts(), 3)

	reloaded := NewFeed(fetcher, storage)
	_, err = reloaded.Load(context.Background())
	require.NoError(t, err)
	posts := reloaded.Posts()
	require.Len(t, posts, 3)
	assert.Equal(t, []int64{next.ID, p.ID, 1700000000000}, ids(posts))
	assert.Equal(t, "First post!", posts[1].Content)
	assert.Equal(t, "Nivetha M", posts[1].Author.Name)
}

func TestLikeAndComment(t *testing.T) {
	storage := overlay.NewMemoryStorage()
	f := NewFeed(&canonicalFetcher{posts: []Post{post(5, "Suresh P", "demo day")}}, storage)
	f.now = fixedClock(1000)
	_, err := f.Load(context.Background())
	require.NoError(t, err)

	liked, err := f.Like(5)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	_, err = f.Like(6)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = f.AddComment(5, "Anitha", " ")
	assert.ErrorIs(t, err, ErrEmptyComment)
	c1, err := f.AddComment(5, "", "Great!")
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", c1.AuthorName)
	c2, err := f.AddComment(5, "Anitha J", "See you there")
	require.NoError(t, err)
	assert.Greater(t, c2.ID, c1.ID)
	_, err = f.AddComment(9, "Anitha J", "lost")
	assert.ErrorIs(t, err, ErrPostNotFound)

	stored, err := overlay.NewStore[Post](storage, StorageKey).Load()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 1, stored[0].Likes)
	assert.Equal(t, 2, stored[0].CommentsCount)
	assert.Equal(t, 2, stored[0].CommentTotal())
	assert.Equal(t, "See you there", stored[0].Comments[0].Content)

	assert.Equal(t, Stats{Posts: 1, Likes: 1}, f.Stats())
}

func TestPostsIsACopy(t *testing.T) {
	f := NewFeed(&canonicalFetcher{posts: []Post{post(1, "Aravind", "one")}}, overlay.NewMemoryStorage())
	_, err := f.Load(context.Background())
	require.NoError(t, err)

	posts := f.Posts()
	posts[0].Content = "changed"
	assert.Equal(t, "one", f.Posts()[0].Content)
}

func TestExport(t *testing.T) {
	f := NewFeed(&canonicalFetcher{posts: []Post{
		post(1, "Aravind", "one"),
		post(2, "Priya", "two, with \"quotes\""),
	}}, overlay.NewMemoryStorage())
	f.now = fixedClock(5000)
	_, err := f.Load(context.Background())
	require.NoError(t, err)
	_, err = f.Submit("Karthik R", "three")
	require.NoError(t, err)
	_, err = f.AddComment(2, "Karthik R", "nice")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Export(&buf))

	rows, skipped, err := content.Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, rows, 3)
	for _, col := range Columns {
		_, ok := rows[0][col]
		assert.True(t, ok, col)
	}

	back := make([]Post, 0, len(rows))
	for _, row := range rows {
		p, ok := PostFromRow(row)
		require.True(t, ok)
		back = append(back, p)
	}
	assert.Equal(t, []int64{5000, 2, 1}, ids(back))
	assert.Equal(t, "two, with \"quotes\"", back[1].Content)
	require.Len(t, back[1].Comments, 1)
	assert.Equal(t, "nice", back[1].Comments[0].Content)
}

func TestPostFromRow(t *testing.T) {
	tt := []struct {
		name     string
		row      content.Row
		ok       bool
		likes    int
		comments int
	}{
		{name: "full", row: content.Row{"id": "7", "likes": "3", "commentsData": `[{"id":1,"authorName":"A","content":"x","timestamp":"now"}]`}, ok: true, likes: 3, comments: 1},
		{name: "bad comments json", row: content.Row{"id": "7", "commentsData": "[{oops"}, ok: true},
		{name: "comments not an array", row: content.Row{"id": "7", "commentsData": `{"id":1}`}, ok: true},
		{name: "bad likes", row: content.Row{"id": "7", "likes": "many"}, ok: true},
		{name: "bad id", row: content.Row{"id": "abc"}, ok: false},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := PostFromRow(tc.row)
			assert.Equal(t, tc.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.likes, p.Likes)
			assert.Len(t, p.Comments, tc.comments)
		})
	}
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AK", Initials("Aravind Kumar"))
	assert.Equal(t, "MO", Initials("member one two"))
	assert.Equal(t, "K", Initials("Karthik"))
	assert.Equal(t, "??", Initials("   "))
}

func TestPollStopsWithContext(t *testing.T) {
	fetcher := &canonicalFetcher{posts: []Post{post(1, "Aravind", "one")}}
	f := NewFeed(fetcher, overlay.NewMemoryStorage())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Poll(ctx, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(f.Posts()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poll did not stop")
	}
}

// hookStorage runs onGet once, the first time the overlay is read.
type hookStorage struct {
	*overlay.MemoryStorage
	onGet func()
}

func (h *hookStorage) GetItem(key string) (string, bool, error) {
	if h.onGet != nil {
		hook := h.onGet
		h.onGet = nil
		hook()
	}
	return h.MemoryStorage.GetItem(key)
}

func TestSubmitDuringLoadIsKept(t *testing.T) {
	storage := &hookStorage{MemoryStorage: overlay.NewMemoryStorage()}
	f := NewFeed(&canonicalFetcher{posts: []Post{post(1, "Aravind", "one")}}, storage)
	f.now = fixedClock(5000)

	submitted := make(chan Post, 1)
	storage.onGet = func() {
		go func() {
			p, err := f.Submit("Racer", "posted while loading")
			assert.NoError(t, err)
			submitted <- p
		}()
	}

	_, err := f.Load(context.Background())
	require.NoError(t, err)
	p := <-submitted

	_, err = f.Like(1)
	require.NoError(t, err)

	assert.Contains(t, ids(f.Posts()), p.ID)
	stored, err := overlay.NewStore[Post](storage.MemoryStorage, StorageKey).Load()
	require.NoError(t, err)
	assert.Contains(t, ids(stored), p.ID)
}

func TestFirstLoadFailureKeepsOverlay(t *testing.T) {
	storage := overlay.NewMemoryStorage()
	require.NoError(t, overlay.NewStore[Post](storage, StorageKey).Save([]Post{post(10, "Priya", "local")}))

	f := NewFeed(&canonicalFetcher{err: errors.New("connection refused")}, storage)
	f.now = fixedClock(5000)
	state, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, content.StateError, state)
	assert.Equal(t, []int64{10}, ids(f.Posts()))

	p, err := f.Submit("New", "hello")
	require.NoError(t, err)

	stored, err := overlay.NewStore[Post](storage, StorageKey).Load()
	require.NoError(t, err)
	assert.Equal(t, []int64{p.ID, 10}, ids(stored))
}

func TestMutationBeforeLoadKeepsOverlay(t *testing.T) {
	storage := overlay.NewMemoryStorage()
	require.NoError(t, overlay.NewStore[Post](storage, StorageKey).Save([]Post{post(10, "Priya", "local")}))

	f := NewFeed(&canonicalFetcher{}, storage)
	_, err := f.Like(10)
	require.NoError(t, err)

	stored, err := overlay.NewStore[Post](storage, StorageKey).Load()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 1, stored[0].Likes)
}
