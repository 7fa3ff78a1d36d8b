package handler

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
	"github.com/noah-isme/simseminar-api/pkg/response"
	"github.com/noah-isme/simseminar-api/pkg/storage"
)

// FileHandler serves stored documents through signed download tokens.
type FileHandler struct {
	files  *storage.LocalStorage
	signer *storage.SignedURLSigner
}

// NewFileHandler creates a new file handler.
func NewFileHandler(files *storage.LocalStorage, signer *storage.SignedURLSigner) *FileHandler {
	return &FileHandler{files: files, signer: signer}
}

// Download godoc
// @Summary Download stored document
// @Description Serve a proposal or review document referenced by a signed token
// @Tags Files
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Router /files/{token} [get]
func (h *FileHandler) Download(c *gin.Context) {
	_, relPath, _, err := h.signer.Parse(c.Param("token"), false)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token"))
		return
	}

	c.FileAttachment(h.files.Path(relPath), filepath.Base(relPath))
}
