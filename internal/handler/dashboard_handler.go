package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/simseminar-api/internal/models"
	"github.com/noah-isme/simseminar-api/internal/service"
	appErrors "github.com/noah-isme/simseminar-api/pkg/errors"
	"github.com/noah-isme/simseminar-api/pkg/response"
)

// DashboardHandler serves the role-shaped home payloads.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Home godoc
// @Summary Dashboard
// @Description Home payload shaped by the caller's role
// @Tags Dashboard
// @Produce json
// @Param year query int false "Statistics year (admin only)"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Home(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	switch claims.Role {
	case models.RoleMahasiswa:
		dashboard, err := h.service.ForMahasiswa(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, dashboard, nil)
	case models.RoleDosen:
		dashboard, err := h.service.ForDosen(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, dashboard, nil)
	case models.RoleAdmin:
		year, _ := strconv.Atoi(c.Query("year"))
		dashboard, err := h.service.ForAdmin(c.Request.Context(), year)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, dashboard, nil)
	default:
		response.Error(c, appErrors.ErrForbidden)
	}
}
