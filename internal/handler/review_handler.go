package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/simseminar-api/internal/models"
	"github.com/noah-isme/simseminar-api/internal/service"
	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
	"github.com/noah-isme/simseminar-api/pkg/response"
	"github.com/noah-isme/simseminar-api/pkg/storage"
)

// ReviewHandler handles the reviewer workflow endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	signer  *storage.SignedURLSigner
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(svc *service.ReviewService, signer *storage.SignedURLSigner) *ReviewHandler {
	return &ReviewHandler{service: svc, signer: signer}
}

// Submit godoc
// @Summary Submit review
// @Description Record a reviewer decision; the role is resolved from the seminar's slots
// @Tags Reviews
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Seminar ID"
// @Param status formData string false "Review status"
// @Param catatan formData string false "Notes"
// @Param file_review formData file false "Review document"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /seminars/{id}/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	req := service.SubmitReviewRequest{
		Status:            models.ReviewStatus(c.PostForm("status")),
		Catatan:           formString(c, "catatan"),
		TanggalAlternatif: formString(c, "tanggal_alternatif"),
		JamAlternatif:     formString(c, "jam_alternatif"),
		RuangAlternatif:   formString(c, "ruang_alternatif"),
	}
	var err error
	if req.NilaiKomponen1, err = formScore(c, "nilai_komponen_1"); err != nil {
		response.Error(c, err)
		return
	}
	if req.NilaiKomponen2, err = formScore(c, "nilai_komponen_2"); err != nil {
		response.Error(c, err)
		return
	}
	if req.NilaiKomponen3, err = formScore(c, "nilai_komponen_3"); err != nil {
		response.Error(c, err)
		return
	}
	if req.NilaiKomponen4, err = formScore(c, "nilai_komponen_4"); err != nil {
		response.Error(c, err)
		return
	}
	if req.NilaiKomponen5, err = formScore(c, "nilai_komponen_5"); err != nil {
		response.Error(c, err)
		return
	}

	document, err := formUpload(c, "file_review")
	if err != nil {
		response.Error(c, err)
		return
	}

	dosen := &models.User{ID: claims.UserID, Nama: claims.Nama, Role: claims.Role}
	review, err := h.service.Submit(c.Request.Context(), c.Param("id"), dosen, req, document)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, review)
}

// Update godoc
// @Summary Update review
// @Description Amend a previously submitted review; author only
// @Tags Reviews
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.UpdateReviewRequest
	if raw := c.PostForm("status"); raw != "" {
		status := models.ReviewStatus(raw)
		req.Status = &status
	}
	req.Catatan = formString(c, "catatan")
	req.TanggalAlternatif = formString(c, "tanggal_alternatif")
	req.JamAlternatif = formString(c, "jam_alternatif")
	req.RuangAlternatif = formString(c, "ruang_alternatif")

	var err error
	if req.NilaiKomponen1, err = formScore(c, "nilai_komponen_1"); err != nil {
		response.Error(c, err)
		return
	}
	if req.NilaiKomponen2, err = formScore(c, "nilai_komponen_2"); err != nil {
		response.Error(c, err)
		return
	}
	if req.NilaiKomponen3, err = formScore(c, "nilai_komponen_3"); err != nil {
		response.Error(c, err)
		return
	}
	if req.NilaiKomponen4, err = formScore(c, "nilai_komponen_4"); err != nil {
		response.Error(c, err)
		return
	}
	if req.NilaiKomponen5, err = formScore(c, "nilai_komponen_5"); err != nil {
		response.Error(c, err)
		return
	}

	document, err := formUpload(c, "file_review")
	if err != nil {
		response.Error(c, err)
		return
	}

	dosen := &models.User{ID: claims.UserID, Nama: claims.Nama, Role: claims.Role}
	review, err := h.service.Update(c.Request.Context(), c.Param("id"), dosen, req, document)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, review, nil)
}

// ListBySeminar godoc
// @Summary List seminar reviews
// @Description All reviews of a seminar with reviewer names
// @Tags Reviews
// @Produce json
// @Param id path string true "Seminar ID"
// @Success 200 {object} response.Envelope
// @Router /seminars/{id}/reviews [get]
func (h *ReviewHandler) ListBySeminar(c *gin.Context) {
	reviews, err := h.service.ListBySeminar(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, reviews, nil)
}

// formScore parses an optional 0-100 integer form field.
func formScore(c *gin.Context, field string) (*int, error) {
	raw := c.PostForm(field)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, appErrors.Validation([]appErrors.FieldError{{Field: field, Message: "must be a whole number"}}, "invalid score")
	}
	return &value, nil
}
