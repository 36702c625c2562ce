package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velidenizayhan/blog/pkg/blog"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements blog.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("duplicate entry")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Post operations

func (r *Repository) CreatePost(ctx context.Context, post *blog.Post) error {
	// id and created_at are assigned by column defaults.
	query := `
		INSERT INTO posts (title, content, image_url, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		post.Title, post.Content, post.ImageURL, post.AuthorID).Scan(
		&post.ID, &post.CreatedAt)

	if err != nil {
		return r.handlePostgresError("create post", err)
	}

	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	query := `
        SELECT id, title, content, image_url, author_id, created_at
        FROM posts WHERE id = $1`

	var post blog.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.ImageURL,
		&post.AuthorID, &post.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrPostNotFound
		}
		return nil, r.handlePostgresError("get post", err)
	}

	return &post, nil
}

func (r *Repository) ListPosts(ctx context.Context, direction blog.SortDirection) ([]*blog.Post, error) {
	order := "DESC"
	if direction == blog.SortOldestFirst {
		order = "ASC"
	}
	query := fmt.Sprintf(`
        SELECT id, title, content, image_url, author_id, created_at
        FROM posts ORDER BY created_at %s`, order)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list posts", err)
	}
	defer rows.Close()

	var posts []*blog.Post
	for rows.Next() {
		var post blog.Post
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.ImageURL,
			&post.AuthorID, &post.CreatedAt); err != nil {
			return nil, r.handlePostgresError("scan post", err)
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate post rows", err)
	}

	return posts, nil
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	// Hard delete: posts have no soft-delete state.
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrPostNotFound
	}
	return nil
}

// Contact message operations

func (r *Repository) CreateContactMessage(ctx context.Context, msg *blog.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query, msg.Name, msg.Email, msg.Message).Scan(&msg.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create contact message", err)
	}

	return nil
}
