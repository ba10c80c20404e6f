package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tit-academy/crm-api/internal/service"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
	"github.com/tit-academy/crm-api/pkg/response"
)

// PurchaseHandler wires HTTP endpoints to the purchase service.
type PurchaseHandler struct {
	service *service.PurchaseService
}

// NewPurchaseHandler creates a new handler.
func NewPurchaseHandler(svc *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: svc}
}

// List godoc
// @Summary List purchases
// @Tags Purchases
// @Produce json
// @Param studentId query string false "Filter by student"
// @Success 200 {object} response.Envelope
// @Router /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	purchases, err := h.service.List(c.Request.Context(), c.Query("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, purchases)
}

// Create godoc
// @Summary Redeem a product
// @Description Deducts the spend from the student's balances; rejected when any balance is short
// @Tags Purchases
// @Accept json
// @Produce json
// @Param payload body service.CreatePurchaseRequest true "Purchase payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req service.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid purchase payload"))
		return
	}

	purchase, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, purchase)
}
