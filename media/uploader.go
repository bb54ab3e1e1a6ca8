package media

import (
	"context"
	"fmt"
	"io"
)

// Image is a binary image to publish.
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Uploader publishes an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, img Image) (string, error)
}

// UploadError is a failed upload. No URL was produced.
type UploadError struct {
	Status  int
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("upload failed: %s", e.Message)
	case e.Err != nil:
		return fmt.Sprintf("upload failed: %v", e.Err)
	}
	return fmt.Sprintf("upload failed: status %d", e.Status)
}

func (e *UploadError) Unwrap() error { return e.Err }
