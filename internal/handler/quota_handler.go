package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/simseminar-api/internal/models"
	"github.com/noah-isme/simseminar-api/internal/service"
	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
	"github.com/noah-isme/simseminar-api/pkg/response"
)

// QuotaHandler exposes the per-category quota ledger.
type QuotaHandler struct {
	service *service.QuotaService
}

// NewQuotaHandler creates a new quota handler.
func NewQuotaHandler(svc *service.QuotaService) *QuotaHandler {
	return &QuotaHandler{service: svc}
}

// GetAll godoc
// @Summary Get quota snapshot
// @Description Remaining capacity per seminar category
// @Tags Quota
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /kuota [get]
func (h *QuotaHandler) GetAll(c *gin.Context) {
	quota, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, quota, nil)
}

// GetByCategory godoc
// @Summary Get quota for one category
// @Tags Quota
// @Produce json
// @Param jenis path string true "Seminar category"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /kuota/{jenis} [get]
func (h *QuotaHandler) GetByCategory(c *gin.Context) {
	quota, err := h.service.GetByCategory(c.Request.Context(), models.SeminarCategory(c.Param("jenis")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, quota, nil)
}

// Configure godoc
// @Summary Configure quota
// @Description Create or replace the active quota for a category
// @Tags Quota
// @Accept json
// @Produce json
// @Param jenis path string true "Seminar category"
// @Param payload body object true "Quota payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /kuota/{jenis} [put]
func (h *QuotaHandler) Configure(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		Total int `json:"kuota_total" binding:"required,gte=0"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid quota payload"))
		return
	}

	entry, err := h.service.Configure(c.Request.Context(), claims.UserID, models.SeminarCategory(c.Param("jenis")), payload.Total)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entry, nil)
}

// Reset godoc
// @Summary Reset quota counters
// @Description Zero the used counters for every active category
// @Tags Quota
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /kuota/reset [post]
func (h *QuotaHandler) Reset(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	affected, err := h.service.Reset(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"reset": affected}, nil)
}
