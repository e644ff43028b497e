package community

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/content"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/overlay"
)

var log = commonlog.GetLogger("clubsite.community")

const (
	// ResourcePath is the canonical feed resource.
	ResourcePath = "community_posts.csv"
	// StorageKey holds the overlay list.
	StorageKey = "local_community_posts"
	// ExportFilename is the download name of an export; it matches the
	// canonical file so an administrator can drop it in place.
	ExportFilename = "community_posts.csv"

	DefaultPollInterval = 10 * time.Second

	justNow   = "Just now"
	anonymous = "Anonymous"
)

var (
	ErrEmptyPost    = errors.New("author name and content are required")
	ErrEmptyComment = errors.New("comment text is required")
	ErrPostNotFound = errors.New("post not found")
)

type Stats struct {
	Posts int
	Likes int
}

// Feed is the in-memory community feed. Every mutation writes the whole list
// to the overlay.
type Feed struct {
	source *content.Source[Post]
	store  *overlay.Store[Post]
	now    func() time.Time

	mu          sync.Mutex
	posts       []Post
	state       content.State
	overlayRead bool
}

func NewFeed(fetcher content.Fetcher, storage overlay.Storage) *Feed {
	return &Feed{
		source: content.NewSource(fetcher, ResourcePath, PostFromRow),
		store:  overlay.NewStore[Post](storage, StorageKey),
		now:    time.Now,
	}
}

// Load fetches the canonical posts and merges the overlay into them. When the
// fetch fails the feed keeps its current posts; on a first load that means the
// overlay alone.
func (f *Feed) Load(ctx context.Context) (content.State, error) {
	canonical, state := f.source.Refresh(ctx)

	// The overlay is read and replaced under one lock so that a concurrent
	// mutation is never overwritten by an older list.
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = state
	if state != content.StateLoaded {
		return state, f.readOverlay()
	}

	local, err := f.store.Load()
	if err != nil {
		return state, errors.Wrap(err, "load community overlay")
	}
	f.posts = Merge(canonical, local)
	f.overlayRead = true
	log.Debugf("community feed: %d canonical, %d local, %d shown", len(canonical), len(local), len(f.posts))
	return state, nil
}

// readOverlay seeds the list from the overlay if it has never been read, so
// that the next save keeps what is already stored. The caller holds f.mu.
func (f *Feed) readOverlay() error {
	if f.overlayRead {
		return nil
	}
	local, err := f.store.Load()
	if err != nil {
		return errors.Wrap(err, "load community overlay")
	}
	f.posts = Merge(f.posts, local)
	f.overlayRead = true
	return nil
}

// Poll loads the feed now and then every interval until ctx ends.
func (f *Feed) Poll(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := f.Load(ctx); err != nil {
			log.Errorf("%v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Submit prepends a new post with an id greater than every existing one.
func (f *Feed) Submit(author, text string) (Post, error) {
	author = strings.TrimSpace(author)
	if author == "" || strings.TrimSpace(text) == "" {
		return Post{}, ErrEmptyPost
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.readOverlay(); err != nil {
		return Post{}, err
	}

	id := f.now().UnixMilli()
	for _, p := range f.posts {
		if p.ID >= id {
			id = p.ID + 1
		}
	}
	post := Post{
		ID:        id,
		Author:    Author{Name: author, AvatarURL: avatarURL(author)},
		Timestamp: justNow,
		Content:   text,
		Comments:  []Comment{},
	}
	f.posts = append([]Post{post}, f.posts...)
	return post, f.save()
}

func (f *Feed) Like(id int64) (Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.readOverlay(); err != nil {
		return Post{}, err
	}

	i := f.index(id)
	if i < 0 {
		return Post{}, ErrPostNotFound
	}
	f.posts[i].Likes++
	return f.posts[i], f.save()
}

// AddComment prepends a comment to a post. A blank author comments as
// Anonymous.
func (f *Feed) AddComment(id int64, author, text string) (Comment, error) {
	if strings.TrimSpace(text) == "" {
		return Comment{}, ErrEmptyComment
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = anonymous
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.readOverlay(); err != nil {
		return Comment{}, err
	}

	i := f.index(id)
	if i < 0 {
		return Comment{}, ErrPostNotFound
	}
	post := &f.posts[i]
	cid := f.now().UnixMilli()
	for _, c := range post.Comments {
		if c.ID >= cid {
			cid = c.ID + 1
		}
	}
	comment := Comment{ID: cid, AuthorName: author, Content: text, Timestamp: justNow}
	post.Comments = append([]Comment{comment}, post.Comments...)
	post.CommentsCount++
	return comment, f.save()
}

// Posts returns a copy of the feed, newest first.
func (f *Feed) Posts() []Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Post, 0, len(f.posts))
	if err := copier.CopyWithOption(&out, &f.posts, copier.Option{DeepCopy: true}); err != nil {
		log.Errorf("copy feed: %v", err)
	}
	return out
}

func (f *Feed) State() content.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Feed) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := Stats{Posts: len(f.posts)}
	for _, p := range f.posts {
		s.Likes += p.Likes
	}
	return s
}

// Export writes the in-memory feed as a canonical CSV.
func (f *Feed) Export(w io.Writer) error {
	f.mu.Lock()
	rows := make([]content.Row, 0, len(f.posts))
	for _, p := range f.posts {
		rows = append(rows, p.Row())
	}
	f.mu.Unlock()
	return content.Format(w, Columns, rows)
}

func (f *Feed) index(id int64) int {
	for i, p := range f.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// save writes the whole list; the caller holds f.mu.
func (f *Feed) save() error {
	return errors.Wrap(f.store.Save(f.posts), "save community overlay")
}
