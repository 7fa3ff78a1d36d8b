package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/simseminar-api/internal/models"
	"github.com/noah-isme/simseminar-api/internal/service"
	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
	"github.com/noah-isme/simseminar-api/pkg/response"
)

// ExportHandler produces downloadable seminar recaps.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Recap godoc
// @Summary Export seminar recap
// @Description Download the seminar recap as CSV or PDF
// @Tags Export
// @Produce octet-stream
// @Param format query string false "csv or pdf (default csv)"
// @Param status query string false "Status filter"
// @Param jenis_seminar query string false "Category filter"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /export/seminars [get]
func (h *ExportHandler) Recap(c *gin.Context) {
	filter := models.SeminarFilter{
		Status: models.SeminarStatus(c.Query("status")),
		Jenis:  models.SeminarCategory(c.Query("jenis_seminar")),
	}

	var (
		result *service.ExportResult
		err    error
	)
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		result, err = h.service.RecapCSV(c.Request.Context(), filter)
	case "pdf":
		result, err = h.service.RecapPDF(c.Request.Context(), filter)
	default:
		response.Error(c, appErrors.Validation([]appErrors.FieldError{{Field: "format", Message: "must be csv or pdf"}}, "unsupported export format"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
