package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/velidenizayhan/blog/pkg/blog"
	"github.com/velidenizayhan/blog/pkg/blog/api"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// homePostLimit is how many recent posts the landing page shows.
const homePostLimit = 3

// Handler serves the public site and the password-gated admin pages.
type Handler struct {
	service   blog.Service
	admin     *api.AdminHandler
	markdown  goldmark.Markdown
	templates map[string]*template.Template
}

func NewHandler(service blog.Service, admin *api.AdminHandler) (*Handler, error) {
	pages := []string{
		"home", "blog_list", "blog_post", "about", "contact",
		"admin_login", "admin_panel", "not_found",
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(templatesFS,
			"templates/layout.html",
			fmt.Sprintf("templates/%s.html", page),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	return &Handler{
		service:   service,
		admin:     admin,
		markdown:  goldmark.New(),
		templates: templates,
	}, nil
}

// Routes returns the router for the HTML pages
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Home)
	r.Get("/blog", h.BlogList)
	r.Get("/blog/{postID}", h.BlogPost)
	r.Get("/hakkimda", h.About)
	r.Get("/iletisim", h.Contact)
	r.Post("/iletisim", h.SubmitContact)

	r.Get("/admin", h.AdminLogin)
	r.Post("/admin", h.AdminAuthenticate)
	r.Get("/admin/blog", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	})
	r.Post("/admin/blog/create", h.AdminCreatePost)
	r.Post("/admin/blog/delete", h.AdminDeletePost)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.NotFound(h.NotFound)

	return r
}

// postView is the template-facing shape of a post.
type postView struct {
	ID        uuid.UUID
	Title     string
	ImageURL  string
	Excerpt   string
	Content   template.HTML
	CreatedAt string
}

var turkishMonths = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// formatDate renders a timestamp the way the site displays dates,
// e.g. "2 Ocak 2006".
func formatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), turkishMonths[t.Month()-1], t.Year())
}

func (h *Handler) toView(p *blog.Post) postView {
	return postView{
		ID:        p.ID,
		Title:     p.Title,
		ImageURL:  p.ImageURL,
		Excerpt:   p.Excerpt(),
		CreatedAt: formatDate(p.CreatedAt),
	}
}

// renderMarkdown converts post markdown to HTML for the article body.
func (h *Handler) renderMarkdown(content string) template.HTML {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(content), &buf); err != nil {
		slog.Error("Failed to render markdown", "error", err)
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(buf.String())
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := h.templates[page]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("Failed to render page", "page", page, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// listPosts fetches posts for public pages. Store failures degrade to an
// empty listing so the site keeps rendering.
func (h *Handler) listPosts(r *http.Request, direction blog.SortDirection) []postView {
	posts, err := h.service.ListPosts(r.Context(), direction)
	if err != nil {
		slog.Error("Failed to list posts for page", "error", err)
		return []postView{}
	}

	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, h.toView(p))
	}
	return views
}

// Home renders the landing page with the most recent posts.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	posts := h.listPosts(r, blog.SortNewestFirst)
	if len(posts) > homePostLimit {
		posts = posts[:homePostLimit]
	}

	h.render(w, http.StatusOK, "home", map[string]any{"Posts": posts})
}

// BlogList renders the listing page. The sort query toggles between
// newest-first and oldest-first.
func (h *Handler) BlogList(w http.ResponseWriter, r *http.Request) {
	direction := blog.ParseSortDirection(r.URL.Query().Get("sort"))
	posts := h.listPosts(r, direction)

	h.render(w, http.StatusOK, "blog_list", map[string]any{
		"Posts": posts,
		"Sort":  string(direction),
	})
}

// BlogPost renders a single article. Unknown or malformed ids get the
// not-found page.
func (h *Handler) BlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	view := h.toView(post)
	view.Content = h.renderMarkdown(post.Content)

	h.render(w, http.StatusOK, "blog_post", view)
}

// project describes an entry on the about page.
type project struct {
	Title       string
	Description string
	URL         string
	Tech        []string
}

var projects = []project{
	{
		Title:       "Blog Sitesi",
		Description: "Go ve PostgreSQL kullanarak geliştirdiğim kişisel blog sitesi.",
		URL:         "https://github.com/velidenizayhan/blog",
		Tech:        []string{"Go", "PostgreSQL", "S3"},
	},
	{
		Title:       "E-shopping-MERN",
		Description: "MERN stack ile geliştirilmiş e-ticaret uygulaması",
		URL:         "https://github.com/Denizayhan04/E-shopping-MERN",
		Tech:        []string{"MongoDB", "Express.js", "React", "Node.js"},
	},
	{
		Title:       "nextjs-ecommerce",
		Description: "Next.js ile geliştirilmiş modern e-ticaret projesi",
		URL:         "https://github.com/Denizayhan04/nextjs-ecommerce",
		Tech:        []string{"Next.js", "React", "Tailwind CSS"},
	},
	{
		Title:       "Instagram-react",
		Description: "React ile geliştirilmiş Instagram klonu",
		URL:         "https://github.com/Denizayhan04/Instagram-react",
		Tech:        []string{"React", "Firebase", "Tailwind CSS"},
	},
	{
		Title:       "weather-forecast-turkish",
		Description: "Türkçe hava durumu tahmin uygulaması",
		URL:         "https://github.com/Denizayhan04/weather-forecast-turkish",
		Tech:        []string{"React", "OpenWeather API", "CSS"},
	},
}

// About renders the about page.
func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "about", map[string]any{"Projects": projects})
}

// Contact renders the contact page.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "contact", map[string]any{})
}

// SubmitContact stores a contact form submission.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "contact", map[string]any{"Error": "Missing required fields"})
		return
	}

	err := h.service.CreateContactMessage(r.Context(), blog.CreateContactMessageRequest{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	})
	if err != nil {
		var validationErr *blog.ValidationError
		if errors.As(err, &validationErr) {
			h.render(w, http.StatusBadRequest, "contact", map[string]any{"Error": "Missing required fields"})
			return
		}
		slog.Error("Failed to store contact message", "error", err)
		h.render(w, http.StatusInternalServerError, "contact", map[string]any{"Error": "Error sending message"})
		return
	}

	h.render(w, http.StatusOK, "contact", map[string]any{"Success": true})
}

// AdminLogin renders the password form.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "admin_login", map[string]any{})
}

// AdminAuthenticate checks the password and on success renders the
// management panel with a signed token carried in the page.
func (h *Handler) AdminAuthenticate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "admin_login", map[string]any{"Error": "Geçersiz şifre"})
		return
	}

	if !h.admin.VerifyPassword(r.PostFormValue("password")) {
		h.render(w, http.StatusUnauthorized, "admin_login", map[string]any{"Error": "Geçersiz şifre"})
		return
	}

	token, err := h.admin.IssueToken()
	if err != nil {
		slog.Error("Failed to issue admin token", "error", err)
		h.render(w, http.StatusInternalServerError, "admin_login", map[string]any{"Error": "Geçersiz şifre"})
		return
	}

	h.renderPanel(w, r, token, panelState{})
}

// panelState carries outcome flags into the management panel template.
type panelState struct {
	Success bool
	Error   string
}

func (h *Handler) renderPanel(w http.ResponseWriter, r *http.Request, token string, state panelState) {
	posts := h.listPosts(r, blog.SortNewestFirst)

	h.render(w, http.StatusOK, "admin_panel", map[string]any{
		"Token":   token,
		"Posts":   posts,
		"Success": state.Success,
		"Error":   state.Error,
	})
}

// adminToken extracts and verifies the token from a panel form. Returns
// the token string and whether it is valid.
func (h *Handler) adminToken(r *http.Request) (string, bool) {
	if err := r.ParseForm(); err != nil {
		return "", false
	}
	token := r.PostFormValue("token")
	return token, h.admin.VerifyTokenString(token)
}

// AdminCreatePost stores a new post submitted from the panel.
func (h *Handler) AdminCreatePost(w http.ResponseWriter, r *http.Request) {
	token, ok := h.adminToken(r)
	if !ok {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	_, err := h.service.CreatePost(r.Context(), blog.CreatePostRequest{
		Title:    r.PostFormValue("title"),
		Content:  r.PostFormValue("content"),
		ImageURL: r.PostFormValue("image_url"),
	})
	if err != nil {
		slog.Error("Failed to create post", "error", err)
		h.renderPanel(w, r, token, panelState{
			Error: "Yazı kaydedilirken bir hata oluştu. Lütfen tekrar deneyin.",
		})
		return
	}

	h.renderPanel(w, r, token, panelState{Success: true})
}

// AdminDeletePost removes a post submitted from the panel. Deleting an
// already-deleted post is absorbed silently.
func (h *Handler) AdminDeletePost(w http.ResponseWriter, r *http.Request) {
	token, ok := h.adminToken(r)
	if !ok {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	id, err := uuid.Parse(r.PostFormValue("id"))
	if err != nil {
		h.renderPanel(w, r, token, panelState{})
		return
	}

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		slog.Error("Failed to delete post", "post_id", id, "error", err)
		h.renderPanel(w, r, token, panelState{
			Error: "Yazı silinirken bir hata oluştu. Lütfen tekrar deneyin.",
		})
		return
	}

	h.renderPanel(w, r, token, panelState{})
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, "not_found", map[string]any{})
}
