package blog

import (
	"time"

	"github.com/google/uuid"
)

// PlaceholderAuthorID is the author recorded on every post. The site has a
// single operator and no identity model, so posts carry a fixed placeholder.
var PlaceholderAuthorID = uuid.MustParse("00000000-0000-0000-0000-000000000000")

// SortDirection orders post listings by creation time.
type SortDirection string

const (
	SortNewestFirst SortDirection = "desc"
	SortOldestFirst SortDirection = "asc"
)

// ParseSortDirection maps a query-string value to a SortDirection,
// defaulting to newest-first.
func ParseSortDirection(s string) SortDirection {
	if s == string(SortOldestFirst) {
		return SortOldestFirst
	}
	return SortNewestFirst
}

// ExcerptLength is the number of characters of post content shown in
// listings before truncation.
const ExcerptLength = 150

// Post is a published blog entry. There is no draft state: a post is
// publicly visible as soon as it exists in the store. Posts are never
// updated in place; they are created once and optionally deleted.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Excerpt returns the first ExcerptLength characters of the content,
// with a trailing ellipsis when truncated.
func (p *Post) Excerpt() string {
	runes := []rune(p.Content)
	if len(runes) <= ExcerptLength {
		return p.Content
	}
	return string(runes[:ExcerptLength]) + "..."
}

// ContactMessage is a submission from the public contact form. Messages are
// a write-only sink: nothing in this system reads, updates or deletes them.
type ContactMessage struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// FileReference identifies an uploaded file in the object store.
type FileReference struct {
	Key string `json:"key"`
	URL string `json:"url,omitempty"`
}
