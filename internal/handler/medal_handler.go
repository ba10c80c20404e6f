package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tit-academy/crm-api/internal/service"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
	"github.com/tit-academy/crm-api/pkg/response"
)

// MedalHandler wires HTTP endpoints to the medal service.
type MedalHandler struct {
	service *service.MedalService
}

// NewMedalHandler creates a new handler.
func NewMedalHandler(svc *service.MedalService) *MedalHandler {
	return &MedalHandler{service: svc}
}

// List godoc
// @Summary List medals with student and awarder inlined
// @Tags Medals
// @Produce json
// @Param studentId query string false "Filter by student"
// @Success 200 {object} response.Envelope
// @Router /medals [get]
func (h *MedalHandler) List(c *gin.Context) {
	medals, err := h.service.List(c.Request.Context(), c.Query("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, medals)
}

// Create godoc
// @Summary Award a medal
// @Description Credits the student's matching balance in the same operation
// @Tags Medals
// @Accept json
// @Produce json
// @Param payload body service.CreateMedalRequest true "Medal payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /medals [post]
func (h *MedalHandler) Create(c *gin.Context) {
	var req service.CreateMedalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid medal payload"))
		return
	}

	if req.AwardedBy == "" {
		if claims := claimsFromContext(c); claims != nil {
			req.AwardedBy = claims.UserID
		}
	}

	medal, err := h.service.Award(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, medal)
}

// Delete godoc
// @Summary Revoke a medal
// @Description Debits the student's matching balance, clamped at zero
// @Tags Medals
// @Produce json
// @Param id path string true "Medal ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /medals/{id} [delete]
func (h *MedalHandler) Delete(c *gin.Context) {
	if err := h.service.Revoke(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "medal revoked"})
}
