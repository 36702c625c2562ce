package fs_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velidenizayhan/blog/pkg/blog"
	"github.com/velidenizayhan/blog/pkg/blog/storage/fs"
)

func newBackend(t *testing.T, urlPrefix string) *fs.Backend {
	t.Helper()
	backend, err := fs.New(fs.Config{BaseDir: t.TempDir(), URLPrefix: urlPrefix})
	require.NoError(t, err)
	return backend
}

func TestNewRequiresBaseDir(t *testing.T) {
	_, err := fs.New(fs.Config{})
	assert.Error(t, err)
}

func TestUploadAndDownload(t *testing.T) {
	backend := newBackend(t, "")
	ctx := context.Background()

	err := backend.Upload(ctx, strings.NewReader("file body"), blog.UploadParams{
		ObjectKey: "public/doc.txt",
	})
	require.NoError(t, err)

	rc, err := backend.Download(ctx, "public/doc.txt")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "file body", string(data))
}

func TestUploadOverwrites(t *testing.T) {
	backend := newBackend(t, "")
	ctx := context.Background()

	for _, body := range []string{"old", "new"} {
		err := backend.Upload(ctx, strings.NewReader(body), blog.UploadParams{
			ObjectKey: "public/doc.txt",
		})
		require.NoError(t, err)
	}

	rc, err := backend.Download(ctx, "public/doc.txt")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestDownloadMissing(t *testing.T) {
	backend := newBackend(t, "")

	_, err := backend.Download(context.Background(), "missing")
	assert.ErrorIs(t, err, blog.ErrObjectNotFound)
}

func TestDelete(t *testing.T) {
	backend := newBackend(t, "")
	ctx := context.Background()

	err := backend.Upload(ctx, strings.NewReader("x"), blog.UploadParams{ObjectKey: "k"})
	require.NoError(t, err)

	require.NoError(t, backend.Delete(ctx, "k"))
	assert.ErrorIs(t, backend.Delete(ctx, "k"), blog.ErrObjectNotFound)
}

func TestGetObjectMeta(t *testing.T) {
	backend := newBackend(t, "")
	ctx := context.Background()

	err := backend.Upload(ctx, strings.NewReader("hello world"), blog.UploadParams{
		ObjectKey: "public/hello.txt",
	})
	require.NoError(t, err)

	meta, err := backend.GetObjectMeta(ctx, "public/hello.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(11), meta.Size)
	assert.NotEmpty(t, meta.ContentType)

	_, err = backend.GetObjectMeta(ctx, "missing")
	assert.ErrorIs(t, err, blog.ErrObjectNotFound)
}

func TestGetDownloadURL(t *testing.T) {
	ctx := context.Background()

	withPrefix := newBackend(t, "https://cdn.example.com/files/")
	url, err := withPrefix.GetDownloadURL(ctx, "public/doc.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/files/public/doc.txt", url)

	withoutPrefix := newBackend(t, "")
	_, err = withoutPrefix.GetDownloadURL(ctx, "public/doc.txt")
	assert.Error(t, err)
}
