package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velidenizayhan/blog/pkg/blog"
	"github.com/velidenizayhan/blog/pkg/blog/api"
	memoryrepo "github.com/velidenizayhan/blog/pkg/blog/repo/memory"
	memorystorage "github.com/velidenizayhan/blog/pkg/blog/storage/memory"
	"github.com/velidenizayhan/blog/pkg/blog/web"
)

const testPassword = "112233"

func newTestSite(t *testing.T, svc blog.Service) chi.Router {
	t.Helper()
	admin := api.NewAdminHandler(svc, testPassword, "test-secret")
	handler, err := web.NewHandler(svc, admin)
	require.NoError(t, err)
	return handler.Routes()
}

func newTestService(t *testing.T) blog.Service {
	t.Helper()
	svc, err := blog.New(
		blog.WithRepository(memoryrepo.New()),
		blog.WithBlobStore("memory", memorystorage.New()),
	)
	require.NoError(t, err)
	return svc
}

func get(t *testing.T, router chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func postForm(t *testing.T, router chi.Router, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHomePage(t *testing.T) {
	svc := newTestService(t)
	router := newTestSite(t, svc)

	rr := get(t, router, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Veli Deniz Ayhan")
	assert.Contains(t, rr.Body.String(), "Son Yazılarım")
}

func TestHomePageShowsRecentPosts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three", "four"} {
		_, err := svc.CreatePost(ctx, blog.CreatePostRequest{Title: title, Content: "body"})
		require.NoError(t, err)
	}

	router := newTestSite(t, svc)
	rr := get(t, router, "/")
	body := rr.Body.String()

	// Only the three most recent posts appear
	assert.Contains(t, body, "four")
	assert.Contains(t, body, "three")
	assert.Contains(t, body, "two")
	assert.NotContains(t, body, "one")
}

func TestBlogListSortToggle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"oldest-post", "newest-post"} {
		_, err := svc.CreatePost(ctx, blog.CreatePostRequest{Title: title, Content: "body"})
		require.NoError(t, err)
	}

	router := newTestSite(t, svc)

	rr := get(t, router, "/blog")
	body := rr.Body.String()
	assert.Less(t, strings.Index(body, "newest-post"), strings.Index(body, "oldest-post"))

	rr = get(t, router, "/blog?sort=asc")
	body = rr.Body.String()
	assert.Less(t, strings.Index(body, "oldest-post"), strings.Index(body, "newest-post"))
}

func TestBlogListExcerpt(t *testing.T) {
	svc := newTestService(t)
	long := strings.Repeat("x", blog.ExcerptLength+50)

	_, err := svc.CreatePost(context.Background(), blog.CreatePostRequest{
		Title:   "long one",
		Content: long,
	})
	require.NoError(t, err)

	router := newTestSite(t, svc)
	rr := get(t, router, "/blog")

	assert.Contains(t, rr.Body.String(), strings.Repeat("x", blog.ExcerptLength)+"...")
	assert.NotContains(t, rr.Body.String(), long)
}

func TestBlogListDegradesToEmptyOnStoreFailure(t *testing.T) {
	svc, err := blog.New(blog.WithRepository(failingRepository{}))
	require.NoError(t, err)
	router := newTestSite(t, svc)

	rr := get(t, router, "/blog")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Blog Yazılarım")
}

func TestBlogPostPage(t *testing.T) {
	svc := newTestService(t)

	post, err := svc.CreatePost(context.Background(), blog.CreatePostRequest{
		Title:   "Markdown post",
		Content: "# Heading\n\nParagraph text.",
	})
	require.NoError(t, err)

	router := newTestSite(t, svc)
	rr := get(t, router, "/blog/"+post.ID.String())

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Markdown post")
	assert.Contains(t, rr.Body.String(), "<h1>Heading</h1>")
}

func TestBlogPostNotFound(t *testing.T) {
	router := newTestSite(t, newTestService(t))

	rr := get(t, router, "/blog/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "404")

	rr = get(t, router, "/blog/not-a-uuid")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStaticPages(t *testing.T) {
	router := newTestSite(t, newTestService(t))

	rr := get(t, router, "/hakkimda")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Projelerim")

	rr = get(t, router, "/iletisim")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "velidenizayhan@gmail.com")
}

func TestUnknownPageRenders404(t *testing.T) {
	router := newTestSite(t, newTestService(t))

	rr := get(t, router, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Aradığınız sayfa bulunamadı")
}

func TestContactFormSubmit(t *testing.T) {
	router := newTestSite(t, newTestService(t))

	rr := postForm(t, router, "/iletisim", url.Values{
		"name":    {"Deniz"},
		"email":   {"deniz@example.com"},
		"message": {"Merhaba!"},
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Message sent successfully")
}

func TestContactFormMissingFields(t *testing.T) {
	router := newTestSite(t, newTestService(t))

	rr := postForm(t, router, "/iletisim", url.Values{"name": {"Deniz"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Missing required fields")
}

func TestContactFormStoreFailure(t *testing.T) {
	svc, err := blog.New(blog.WithRepository(failingRepository{}))
	require.NoError(t, err)
	router := newTestSite(t, svc)

	rr := postForm(t, router, "/iletisim", url.Values{
		"name":    {"Deniz"},
		"email":   {"deniz@example.com"},
		"message": {"Merhaba!"},
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Error sending message")
}

func TestAdminLoginPage(t *testing.T) {
	router := newTestSite(t, newTestService(t))

	rr := get(t, router, "/admin")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Admin Paneli")
}

func TestAdminWrongPassword(t *testing.T) {
	router := newTestSite(t, newTestService(t))

	for _, password := range []string{"wrong", " 112233", "112233 "} {
		rr := postForm(t, router, "/admin", url.Values{"password": {password}})
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "password %q", password)
		assert.Contains(t, rr.Body.String(), "Geçersiz şifre")
	}
}

var tokenFieldRe = regexp.MustCompile(`name="token" value="([^"]+)"`)

func panelToken(t *testing.T, router chi.Router) string {
	t.Helper()
	rr := postForm(t, router, "/admin", url.Values{"password": {testPassword}})
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Blog Yazıları Yönetimi")

	match := tokenFieldRe.FindStringSubmatch(rr.Body.String())
	require.Len(t, match, 2)
	return match[1]
}

func TestAdminPanelFlow(t *testing.T) {
	svc := newTestService(t)
	router := newTestSite(t, svc)
	token := panelToken(t, router)

	rr := postForm(t, router, "/admin/blog/create", url.Values{
		"token":   {token},
		"title":   {"Panel post"},
		"content": {"Written from the panel."},
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Yazı başarıyla kaydedildi!")
	assert.Contains(t, rr.Body.String(), "Panel post")

	posts, err := svc.ListPosts(context.Background(), blog.SortNewestFirst)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	rr = postForm(t, router, "/admin/blog/delete", url.Values{
		"token": {token},
		"id":    {posts[0].ID.String()},
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	posts, err = svc.ListPosts(context.Background(), blog.SortNewestFirst)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestAdminPanelRejectsBadToken(t *testing.T) {
	svc := newTestService(t)
	router := newTestSite(t, svc)

	rr := postForm(t, router, "/admin/blog/create", url.Values{
		"token":   {"forged"},
		"title":   {"Sneaky"},
		"content": {"nope"},
	})
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	posts, err := svc.ListPosts(context.Background(), blog.SortNewestFirst)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestAdminDeleteStoreFailure(t *testing.T) {
	svc, err := blog.New(blog.WithRepository(failingRepository{}))
	require.NoError(t, err)
	router := newTestSite(t, svc)
	token := panelToken(t, router)

	rr := postForm(t, router, "/admin/blog/delete", url.Values{
		"token": {token},
		"id":    {uuid.NewString()},
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Yazı silinirken bir hata oluştu")
}

func TestAdminCreateValidationError(t *testing.T) {
	router := newTestSite(t, newTestService(t))
	token := panelToken(t, router)

	rr := postForm(t, router, "/admin/blog/create", url.Values{
		"token":   {token},
		"title":   {"   "},
		"content": {"body"},
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Yazı kaydedilirken bir hata oluştu")
}

func TestAdminBlogRedirects(t *testing.T) {
	router := newTestSite(t, newTestService(t))

	rr := get(t, router, "/admin/blog")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin", rr.Header().Get("Location"))
}

// failingRepository simulates an unreachable store.
type failingRepository struct{}

var errBackendDown = errors.New("connection refused")

func (failingRepository) CreatePost(context.Context, *blog.Post) error { return errBackendDown }
func (failingRepository) GetPost(context.Context, uuid.UUID) (*blog.Post, error) {
	return nil, errBackendDown
}
func (failingRepository) ListPosts(context.Context, blog.SortDirection) ([]*blog.Post, error) {
	return nil, errBackendDown
}
func (failingRepository) DeletePost(context.Context, uuid.UUID) error { return errBackendDown }
func (failingRepository) CreateContactMessage(context.Context, *blog.ContactMessage) error {
	return errBackendDown
}
