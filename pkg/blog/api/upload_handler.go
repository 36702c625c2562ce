package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/velidenizayhan/blog/pkg/blog"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing.
const maxUploadMemory = 32 << 20 // 32 MB

// UploadHandler forwards uploaded files to the configured blob store.
type UploadHandler struct {
	service blog.Service
}

func NewUploadHandler(service blog.Service) *UploadHandler {
	return &UploadHandler{service: service}
}

// Routes returns the router for upload endpoints
func (h *UploadHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.UploadFile)
	return r
}

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	Message string `json:"message"`
	Key     string `json:"key"`
	URL     string `json:"url,omitempty"`
}

// UploadFile accepts a single multipart file under the "file" field and
// stores it. Re-uploading the same file name replaces the stored object.
func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Message: "No file uploaded"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Message: "No file uploaded"})
		return
	}
	defer file.Close()

	ref, err := h.service.UploadFile(r.Context(), blog.UploadFileRequest{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		slog.Error("Failed to upload file", "file_name", header.Filename, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Message: "Error uploading message"})
		return
	}

	render.JSON(w, r, UploadResponse{
		Message: "File uploaded successfully",
		Key:     ref.Key,
		URL:     ref.URL,
	})
}
