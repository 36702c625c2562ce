package blog

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for post and contact-message persistence.
// The store assigns id and created_at on insert; implementations fill those
// fields on the value passed to CreatePost/CreateContactMessage.
type Repository interface {
	CreatePost(ctx context.Context, post *Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	ListPosts(ctx context.Context, direction SortDirection) ([]*Post, error)
	// DeletePost removes the post permanently. It returns ErrPostNotFound
	// when no row matched so callers can distinguish a no-op from a store
	// failure.
	DeletePost(ctx context.Context, id uuid.UUID) error

	CreateContactMessage(ctx context.Context, msg *ContactMessage) error
}

// BlobStore defines the interface for object storage backends. Uploads have
// upsert semantics: writing an existing key replaces its content.
type BlobStore interface {
	Upload(ctx context.Context, reader io.Reader, params UploadParams) error
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, objectKey string) error
	GetObjectMeta(ctx context.Context, objectKey string) (*ObjectMeta, error)

	// GetDownloadURL returns a URL under which the object can be fetched,
	// or an error for backends that only support direct download.
	GetDownloadURL(ctx context.Context, objectKey string) (string, error)
}

// UploadParams contains parameters for uploading an object.
type UploadParams struct {
	ObjectKey string
	MimeType  string
}

// ObjectMeta contains metadata about an object in storage.
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
}

// EventSink defines the interface for event handling.
type EventSink interface {
	// PostCreated is fired when a post is created.
	PostCreated(ctx context.Context, post *Post) error

	// PostDeleted is fired when a post is deleted.
	PostDeleted(ctx context.Context, postID uuid.UUID) error

	// ContactMessageReceived is fired when a contact message is stored.
	ContactMessageReceived(ctx context.Context, msg *ContactMessage) error

	// FileUploaded is fired when a file lands in the object store.
	FileUploaded(ctx context.Context, ref *FileReference) error
}
