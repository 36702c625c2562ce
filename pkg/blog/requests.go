package blog

import "io"

// Request DTOs

// CreatePostRequest contains parameters for publishing a new post. Title and
// content must be non-empty; ImageURL, when set, must be an absolute URL.
type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

// CreateContactMessageRequest contains parameters for a contact submission.
type CreateContactMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// UploadFileRequest contains parameters for storing an uploaded file.
type UploadFileRequest struct {
	FileName    string
	ContentType string
	Body        io.Reader
}
