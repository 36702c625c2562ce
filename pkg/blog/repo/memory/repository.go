package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/velidenizayhan/blog/pkg/blog"
)

// Repository implements blog.Repository using in-memory storage. It assigns
// id and created_at on insert, the way the hosted store does.
type Repository struct {
	mu       sync.RWMutex
	posts    map[uuid.UUID]*blog.Post
	messages []*blog.ContactMessage
	lastTS   time.Time
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		posts: make(map[uuid.UUID]*blog.Post),
	}
}

// now returns a timestamp strictly after any previously assigned one, so
// created_at stays monotonic with insertion order even within one tick.
func (r *Repository) now() time.Time {
	ts := time.Now().UTC()
	if !ts.After(r.lastTS) {
		ts = r.lastTS.Add(time.Nanosecond)
	}
	r.lastTS = ts
	return ts
}

// Post operations

func (r *Repository) CreatePost(ctx context.Context, post *blog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = uuid.New()
	post.CreatedAt = r.now()

	// Store a copy to avoid external modifications
	postCopy := *post
	r.posts[post.ID] = &postCopy

	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, blog.ErrPostNotFound
	}

	// Return a copy to prevent external modifications
	postCopy := *post
	return &postCopy, nil
}

func (r *Repository) ListPosts(ctx context.Context, direction blog.SortDirection) ([]*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*blog.Post, 0, len(r.posts))
	for _, post := range r.posts {
		postCopy := *post
		result = append(result, &postCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if direction == blog.SortOldestFirst {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[id]; !exists {
		return blog.ErrPostNotFound
	}

	delete(r.posts, id)
	return nil
}

// Contact message operations

func (r *Repository) CreateContactMessage(ctx context.Context, msg *blog.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.CreatedAt = r.now()

	msgCopy := *msg
	r.messages = append(r.messages, &msgCopy)

	return nil
}
