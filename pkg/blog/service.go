package blog

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the operations the HTTP layers drive: public reads,
// contact submission, the upload pass-through, and the privileged
// create/delete operations behind the admin gate.
type Service interface {
	// Post operations
	ListPosts(ctx context.Context, direction SortDirection) ([]*Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error

	// Contact operations
	CreateContactMessage(ctx context.Context, req CreateContactMessageRequest) error

	// Upload pass-through
	UploadFile(ctx context.Context, req UploadFileRequest) (*FileReference, error)

	// Storage backend operations
	RegisterBackend(name string, backend BlobStore)
	GetBackend(name string) (BlobStore, error)
}
