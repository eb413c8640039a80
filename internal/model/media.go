package model

import "errors"

// UploadResult holds the public URL and storage key of an uploaded object.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// PresignUploadRequest asks for a presigned PUT URL for a post photo.
type PresignUploadRequest struct {
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
}

// PresignUploadResult carries the presigned URL plus the key and public URL
// the client should attach to the post afterwards.
type PresignUploadResult struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	Key       string `json:"key"`
}

const (
	MaxPhotoSizeBytes = 10 * 1024 * 1024

	ProfilePhotoFolder = "profiles"
	PostPhotoFolder    = "posts"

	ProfilePhotoWidth  = 200
	ProfilePhotoHeight = 200

	ContentTypeJPEG = "image/jpeg"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IsAllowedImageType reports whether the content type is an accepted photo format.
func IsAllowedImageType(contentType string) bool {
	return allowedImageTypes[contentType]
}

var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidImageType = errors.New("unsupported image type")
)
