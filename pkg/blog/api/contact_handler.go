package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/velidenizayhan/blog/pkg/blog"
)

// ContactHandler accepts contact form submissions. Messages are write-only:
// there is no read endpoint anywhere in the service.
type ContactHandler struct {
	service blog.Service
}

func NewContactHandler(service blog.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// Routes returns the router for contact endpoints
func (h *ContactHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateMessage)
	return r
}

// MessageResponse is returned after a contact submission.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateMessage stores a contact message
func (h *ContactHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req blog.CreateContactMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode contact request", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Message: "Missing required fields"})
		return
	}

	if err := h.service.CreateContactMessage(r.Context(), req); err != nil {
		var validationErr *blog.ValidationError
		if errors.As(err, &validationErr) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Message: "Missing required fields"})
			return
		}
		slog.Error("Failed to store contact message", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Message: "Error sending message"})
		return
	}

	render.JSON(w, r, MessageResponse{Message: "Message sent successfully"})
}
