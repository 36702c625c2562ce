package blog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NoopEventSink is an EventSink that does nothing.
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-op event sink
func NewNoopEventSink() *NoopEventSink {
	return &NoopEventSink{}
}

func (s *NoopEventSink) PostCreated(ctx context.Context, post *Post) error { return nil }

func (s *NoopEventSink) PostDeleted(ctx context.Context, postID uuid.UUID) error { return nil }

func (s *NoopEventSink) ContactMessageReceived(ctx context.Context, msg *ContactMessage) error {
	return nil
}

func (s *NoopEventSink) FileUploaded(ctx context.Context, ref *FileReference) error { return nil }

// LogEventSink logs domain events through slog.
type LogEventSink struct {
	logger *slog.Logger
}

// NewLogEventSink creates an event sink that writes structured log lines.
func NewLogEventSink(logger *slog.Logger) *LogEventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEventSink{logger: logger}
}

func (s *LogEventSink) PostCreated(ctx context.Context, post *Post) error {
	s.logger.InfoContext(ctx, "post created", "post_id", post.ID, "title", post.Title)
	return nil
}

func (s *LogEventSink) PostDeleted(ctx context.Context, postID uuid.UUID) error {
	s.logger.InfoContext(ctx, "post deleted", "post_id", postID)
	return nil
}

func (s *LogEventSink) ContactMessageReceived(ctx context.Context, msg *ContactMessage) error {
	s.logger.InfoContext(ctx, "contact message received", "from", msg.Email)
	return nil
}

func (s *LogEventSink) FileUploaded(ctx context.Context, ref *FileReference) error {
	s.logger.InfoContext(ctx, "file uploaded", "key", ref.Key)
	return nil
}
