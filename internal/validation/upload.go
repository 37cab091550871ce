package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadKB bounds the size of an uploaded image.
const MaxUploadKB = 2048

// Upload carries a file received with a request.
type Upload struct {
	Filename string
	Size     int64
	Content  []byte
}

// UploadFromFileHeader reads a multipart file part into an Upload.
func UploadFromFileHeader(fh *multipart.FileHeader) (*Upload, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload %q: %w", fh.Filename, err)
	}
	return &Upload{Filename: fh.Filename, Size: int64(len(content)), Content: content}, nil
}

// CheckImage records violations for a non-image payload or one exceeding the
// size cap. The detected content type is authoritative, not the filename.
func (u *Upload) CheckImage(field string, fields FieldErrors) {
	if !strings.HasPrefix(mimetype.Detect(u.Content).String(), "image/") {
		fields.Add(field, fmt.Sprintf("The %s must be an image.", field))
	}
	if u.Size > MaxUploadKB*1024 {
		fields.Add(field, fmt.Sprintf("The %s must not be greater than %d kilobytes.", field, MaxUploadKB))
	}
}

// Extension returns the file extension for the stored blob name, preferring
// the detected content type over the client-supplied filename.
func (u *Upload) Extension() string {
	if ext := mimetype.Detect(u.Content).Extension(); ext != "" {
		return ext
	}
	if idx := strings.LastIndex(u.Filename, "."); idx >= 0 {
		return u.Filename[idx:]
	}
	return ""
}
