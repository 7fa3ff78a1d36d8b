package service

import (
	"fmt"
	"path/filepath"
	"time"

	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
)

// storeUpload validates size and content type, then writes the upload under
// prefix/ with a collision-safe name. Returns the stored relative path.
func storeUpload(files FileStore, prefix, ownerID string, upload *FileUpload, maxBytes int64, allowedMIMEs []string) (string, error) {
	if maxBytes > 0 && upload.Size > maxBytes {
		return "", appErrors.Validation([]appErrors.FieldError{{Field: "file", Message: fmt.Sprintf("file exceeds the %d byte limit", maxBytes)}}, "file too large")
	}
	if len(allowedMIMEs) > 0 {
		allowed := false
		for _, mime := range allowedMIMEs {
			if mime == upload.ContentType {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", appErrors.Validation([]appErrors.FieldError{{Field: "file", Message: fmt.Sprintf("content type %s is not allowed", upload.ContentType)}}, "unsupported file type")
		}
	}

	ext := filepath.Ext(upload.Filename)
	name := fmt.Sprintf("%s/%s_%d%s", prefix, ownerID, time.Now().UnixNano(), ext)
	stored, err := files.Save(name, upload.Content)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store file")
	}
	return stored, nil
}
