package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/velidenizayhan/blog/pkg/blog"
)

// tokenLifetime is how long an issued admin token stays valid.
const tokenLifetime = 12 * time.Hour

// AdminHandler gates post authoring behind a shared secret. A matching
// password is exchanged for a signed token, and every privileged call
// re-checks the token.
type AdminHandler struct {
	service   blog.Service
	password  string
	tokenAuth *jwtauth.JWTAuth
}

func NewAdminHandler(service blog.Service, password, tokenSecret string) *AdminHandler {
	return &AdminHandler{
		service:   service,
		password:  password,
		tokenAuth: jwtauth.New("HS256", []byte(tokenSecret), nil),
	}
}

// TokenAuth exposes the token authority for verification by other handlers.
func (h *AdminHandler) TokenAuth() *jwtauth.JWTAuth {
	return h.tokenAuth
}

// Routes returns the router for admin endpoints
func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.tokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Get("/posts", h.ListPosts)
		r.Post("/posts", h.CreatePost)
		r.Delete("/posts/{postID}", h.DeletePost)
	})

	return r
}

// LoginRequest carries the shared admin secret.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login exchanges the admin password for a signed token. The password is
// compared by exact string equality, no trimming or case folding.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Message: "Missing required fields"})
		return
	}

	if req.Password != h.password {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Message: "Invalid password"})
		return
	}

	token, err := h.IssueToken()
	if err != nil {
		slog.Error("Failed to issue admin token", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Message: "Failed to issue token"})
		return
	}

	render.JSON(w, r, LoginResponse{Token: token})
}

// IssueToken creates a signed admin token.
func (h *AdminHandler) IssueToken() (string, error) {
	claims := map[string]interface{}{"role": "admin"}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, tokenLifetime)

	_, tokenString, err := h.tokenAuth.Encode(claims)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// VerifyPassword reports whether the supplied secret matches exactly.
func (h *AdminHandler) VerifyPassword(password string) bool {
	return password == h.password
}

// VerifyTokenString checks a token carried outside the Authorization
// header, e.g. in an HTML form field.
func (h *AdminHandler) VerifyTokenString(tokenString string) bool {
	if tokenString == "" {
		return false
	}
	_, err := jwtauth.VerifyToken(h.tokenAuth, tokenString)
	return err == nil
}

// PostResponse is the JSON shape for a stored post.
type PostResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toPostResponse(p *blog.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
	}
}

// ListPosts returns all posts ordered by creation time.
func (h *AdminHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	direction := blog.ParseSortDirection(r.URL.Query().Get("sort"))

	posts, err := h.service.ListPosts(r.Context(), direction)
	if err != nil {
		slog.Error("Failed to list posts", "error", err)
		writeError(w, r, err, "Failed to list posts")
		return
	}

	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	render.JSON(w, r, out)
}

// CreatePost stores and publishes a new post.
func (h *AdminHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req blog.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Message: "Missing required fields"})
		return
	}

	post, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create post", "error", err)
		writeError(w, r, err, "Failed to create post")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toPostResponse(post))
}

// DeletePost removes a post. Deleting an id that is already gone succeeds.
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Message: "Invalid post ID"})
		return
	}

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		slog.Error("Failed to delete post", "post_id", id, "error", err)
		writeError(w, r, err, "Failed to delete post")
		return
	}

	render.NoContent(w, r)
}
