package blog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// uploadPrefix is the fixed object-key prefix all uploaded files land under.
const uploadPrefix = "public"

// defaultFileName is used when an upload carries no usable file name.
const defaultFileName = "unnamed-file"

// service implements the Service interface
type service struct {
	repository     Repository
	blobStores     map[string]BlobStore
	defaultBackend string
	eventSink      EventSink
	validate       *validator.Validate
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore adds a blob storage backend. The first backend added
// becomes the default unless WithDefaultBackend overrides it.
func WithBlobStore(name string, store BlobStore) Option {
	return func(s *service) {
		if s.blobStores == nil {
			s.blobStores = make(map[string]BlobStore)
		}
		if len(s.blobStores) == 0 {
			s.defaultBackend = name
		}
		s.blobStores[name] = store
	}
}

// WithDefaultBackend selects the backend uploads are written to.
func WithDefaultBackend(name string) Option {
	return func(s *service) {
		s.defaultBackend = name
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		blobStores: make(map[string]BlobStore),
		validate:   validator.New(),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.eventSink == nil {
		s.eventSink = NewNoopEventSink()
	}

	return s, nil
}

// Post operations

func (s *service) ListPosts(ctx context.Context, direction SortDirection) ([]*Post, error) {
	posts, err := s.repository.ListPosts(ctx, direction)
	if err != nil {
		return nil, &StoreError{Op: "list posts", Err: err}
	}
	if posts == nil {
		posts = []*Post{}
	}
	return posts, nil
}

func (s *service) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	post, err := s.repository.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, &StoreError{Op: "get post", Err: err}
	}
	return post, nil
}

func (s *service) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, &ValidationError{Field: "image_url", Reason: "must be an absolute URL"}
	}

	// The store assigns ID and CreatedAt at insert.
	post := &Post{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		AuthorID: PlaceholderAuthorID,
	}

	if err := s.repository.CreatePost(ctx, post); err != nil {
		return nil, &PostError{PostID: post.ID, Op: "create", Err: &StoreError{Op: "create post", Err: err}}
	}

	if err := s.eventSink.PostCreated(ctx, post); err != nil {
		// Events never fail the operation.
		_ = err
	}

	return post, nil
}

func (s *service) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.DeletePost(ctx, id); err != nil {
		// Deleting an already-absent post is a no-op, not an error.
		if errors.Is(err, ErrPostNotFound) {
			return nil
		}
		return &PostError{PostID: id, Op: "delete", Err: &StoreError{Op: "delete post", Err: err}}
	}

	if err := s.eventSink.PostDeleted(ctx, id); err != nil {
		_ = err
	}

	return nil
}

// Contact operations

func (s *service) CreateContactMessage(ctx context.Context, req CreateContactMessageRequest) error {
	for field, value := range map[string]string{
		"name":    req.Name,
		"email":   req.Email,
		"message": req.Message,
	} {
		if strings.TrimSpace(value) == "" {
			return &ValidationError{Field: field, Reason: "must not be empty"}
		}
	}

	msg := &ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	if err := s.repository.CreateContactMessage(ctx, msg); err != nil {
		return &StoreError{Op: "create contact message", Err: err}
	}

	if err := s.eventSink.ContactMessageReceived(ctx, msg); err != nil {
		_ = err
	}

	return nil
}

// Upload pass-through

func (s *service) UploadFile(ctx context.Context, req UploadFileRequest) (*FileReference, error) {
	store, err := s.GetBackend(s.defaultBackend)
	if err != nil {
		return nil, err
	}

	fileName := path.Base(req.FileName)
	if fileName == "" || fileName == "." || fileName == "/" {
		fileName = defaultFileName
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := uploadPrefix + "/" + fileName
	params := UploadParams{
		ObjectKey: objectKey,
		MimeType:  contentType,
	}

	if err := store.Upload(ctx, req.Body, params); err != nil {
		return nil, &StorageError{
			Backend: s.defaultBackend,
			Key:     objectKey,
			Op:      "upload",
			Err:     fmt.Errorf("%w: %v", ErrUploadFailed, err),
		}
	}

	ref := &FileReference{Key: objectKey}
	// A missing URL is fine: some backends only support direct download.
	if url, err := store.GetDownloadURL(ctx, objectKey); err == nil {
		ref.URL = url
	}

	if err := s.eventSink.FileUploaded(ctx, ref); err != nil {
		_ = err
	}

	return ref, nil
}

// Storage backend operations

func (s *service) RegisterBackend(name string, backend BlobStore) {
	if s.blobStores == nil {
		s.blobStores = make(map[string]BlobStore)
	}
	if len(s.blobStores) == 0 {
		s.defaultBackend = name
	}
	s.blobStores[name] = backend
}

func (s *service) GetBackend(name string) (BlobStore, error) {
	store, ok := s.blobStores[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStorageBackendNotFound, name)
	}
	return store, nil
}
