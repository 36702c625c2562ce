package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velidenizayhan/blog/pkg/blog"
	"github.com/velidenizayhan/blog/pkg/blog/repo/postgres"
)

// newTestRepository connects to the database named by TEST_DATABASE_URL and
// prepares the schema. Tests are skipped when the variable is unset.
func newTestRepository(t *testing.T) *postgres.Repository {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping postgres tests")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, pool.Ping(ctx), "Failed to ping test database")
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS pgcrypto")
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS posts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			author_id UUID NOT NULL DEFAULT '00000000-0000-0000-0000-000000000000',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	require.NoError(t, err, "Failed to create posts table")

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS contact_messages (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	require.NoError(t, err, "Failed to create contact_messages table")

	_, err = pool.Exec(ctx, "TRUNCATE posts, contact_messages")
	require.NoError(t, err)

	return postgres.NewWithPool(pool)
}

func TestCreateAndGetPost(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	post := &blog.Post{
		Title:    "pg post",
		Content:  "stored in postgres",
		AuthorID: blog.PlaceholderAuthorID,
	}
	require.NoError(t, repo.CreatePost(ctx, post))

	assert.NotEqual(t, uuid.Nil, post.ID)
	assert.False(t, post.CreatedAt.IsZero())

	got, err := repo.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "pg post", got.Title)

	_, err = repo.GetPost(ctx, uuid.New())
	assert.ErrorIs(t, err, blog.ErrPostNotFound)
}

func TestListPostsOrdering(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, title := range []string{"a", "b"} {
		require.NoError(t, repo.CreatePost(ctx, &blog.Post{
			Title:    title,
			Content:  "x",
			AuthorID: blog.PlaceholderAuthorID,
		}))
	}

	desc, err := repo.ListPosts(ctx, blog.SortNewestFirst)
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, "b", desc[0].Title)

	asc, err := repo.ListPosts(ctx, blog.SortOldestFirst)
	require.NoError(t, err)
	require.Len(t, asc, 2)
	assert.Equal(t, "a", asc[0].Title)
}

func TestDeletePost(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	post := &blog.Post{Title: "doomed", Content: "x", AuthorID: blog.PlaceholderAuthorID}
	require.NoError(t, repo.CreatePost(ctx, post))

	require.NoError(t, repo.DeletePost(ctx, post.ID))
	assert.ErrorIs(t, repo.DeletePost(ctx, post.ID), blog.ErrPostNotFound)
}

func TestCreateContactMessage(t *testing.T) {
	repo := newTestRepository(t)

	msg := &blog.ContactMessage{Name: "Deniz", Email: "d@example.com", Message: "hi"}
	require.NoError(t, repo.CreateContactMessage(context.Background(), msg))
	assert.False(t, msg.CreatedAt.IsZero())
}
