package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/velidenizayhan/blog/pkg/blog"
)

// ErrorResponse is the JSON body returned for failed API calls.
type ErrorResponse struct {
	Message string `json:"message"`
}

// writeError translates a service error into an HTTP status and a short
// message. Raw store errors never reach the response body.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var validationErr *blog.ValidationError

	switch {
	case errors.As(err, &validationErr):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Message: validationErr.Error()})
	case errors.Is(err, blog.ErrPostNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Message: "Post not found"})
	default:
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Message: fallback})
	}
}
