package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/simseminar-api/internal/models"
	"github.com/noah-isme/simseminar-api/internal/service"
	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
	"github.com/noah-isme/simseminar-api/pkg/response"
	"github.com/noah-isme/simseminar-api/pkg/storage"
)

// SeminarHandler handles the registration workflow endpoints.
type SeminarHandler struct {
	service *service.SeminarService
	signer  *storage.SignedURLSigner
}

// NewSeminarHandler creates a new seminar handler.
func NewSeminarHandler(svc *service.SeminarService, signer *storage.SignedURLSigner) *SeminarHandler {
	return &SeminarHandler{service: svc, signer: signer}
}

// Register godoc
// @Summary Register seminar
// @Description Register a seminar with reviewers and an optional proposal document
// @Tags Seminars
// @Accept multipart/form-data
// @Produce json
// @Param judul_seminar formData string true "Title"
// @Param jenis_seminar formData string true "Category"
// @Param abstrak formData string true "Abstract"
// @Param pembimbing_1_id formData string true "First supervisor"
// @Param file_proposal formData file false "Proposal document"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /seminars [post]
func (h *SeminarHandler) Register(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	req := service.RegisterSeminarRequest{
		Judul:         c.PostForm("judul_seminar"),
		Jenis:         models.SeminarCategory(c.PostForm("jenis_seminar")),
		Abstrak:       c.PostForm("abstrak"),
		Pembimbing1ID: c.PostForm("pembimbing_1_id"),
		Pembimbing2ID: formString(c, "pembimbing_2_id"),
		Penguji1ID:    formString(c, "penguji_1_id"),
		Penguji2ID:    formString(c, "penguji_2_id"),
		Tanggal:       formString(c, "tanggal_seminar"),
		JamMulai:      formString(c, "jam_mulai"),
		Ruang:         formString(c, "ruang_seminar"),
	}

	proposal, err := formUpload(c, "file_proposal")
	if err != nil {
		response.Error(c, err)
		return
	}

	mahasiswa := &models.User{ID: claims.UserID, Nama: claims.Nama, Role: claims.Role}
	seminar, err := h.service.Register(c.Request.Context(), mahasiswa, req, proposal)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, seminar)
}

// List godoc
// @Summary List seminars
// @Description List seminars scoped to the caller's role
// @Tags Seminars
// @Produce json
// @Param status query string false "Status filter"
// @Param jenis_seminar query string false "Category filter"
// @Success 200 {object} response.Envelope
// @Router /seminars [get]
func (h *SeminarHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	filter := models.SeminarFilter{
		Status: models.SeminarStatus(c.Query("status")),
		Jenis:  models.SeminarCategory(c.Query("jenis_seminar")),
	}

	seminars, err := h.service.List(c.Request.Context(), claims.UserID, claims.Role, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, seminars, nil)
}

// Detail godoc
// @Summary Get seminar detail
// @Description Seminar with nested reviews and reviewer-proposed alternate slots
// @Tags Seminars
// @Produce json
// @Param id path string true "Seminar ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /seminars/{id} [get]
func (h *SeminarHandler) Detail(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	view, err := h.service.Detail(c.Request.Context(), c.Param("id"), claims.UserID, claims.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, view, nil)
}

// Schedule godoc
// @Summary Reschedule seminar
// @Description Move a seminar to a new slot; status resets to pending
// @Tags Seminars
// @Accept json
// @Produce json
// @Param id path string true "Seminar ID"
// @Param payload body service.ScheduleSeminarRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /seminars/{id}/jadwal [put]
func (h *SeminarHandler) Schedule(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.ScheduleSeminarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}

	seminar, err := h.service.UpdateSchedule(c.Request.Context(), c.Param("id"), claims.UserID, claims.Role, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, seminar, nil)
}

// Complete godoc
// @Summary Complete seminar
// @Description Mark an approved seminar as held and record the grade
// @Tags Seminars
// @Accept json
// @Produce json
// @Param id path string true "Seminar ID"
// @Param payload body service.CompleteSeminarRequest true "Completion payload"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /seminars/{id}/selesai [post]
func (h *SeminarHandler) Complete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CompleteSeminarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid completion payload"))
		return
	}

	seminar, err := h.service.Complete(c.Request.Context(), c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, seminar, nil)
}

// ProposalLink godoc
// @Summary Get proposal download link
// @Description Issue a short-lived signed download link for the proposal document
// @Tags Seminars
// @Produce json
// @Param id path string true "Seminar ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /seminars/{id}/proposal [get]
func (h *SeminarHandler) ProposalLink(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	view, err := h.service.Detail(c.Request.Context(), c.Param("id"), claims.UserID, claims.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	if view.FileProposal == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "this seminar has no proposal document"))
		return
	}

	token, expiresAt, err := h.signer.Generate(view.ID, *view.FileProposal)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt,
	}, nil)
}
