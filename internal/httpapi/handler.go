package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jask/packeta/internal/pickup"
	"github.com/jask/packeta/internal/service"
	"github.com/jask/packeta/internal/validator"
)

const (
	msgInvalidRequest   = "invalid request body"
	msgValidationFailed = "validation failed"
)

// PickupService is what the handler needs from the domain layer.
type PickupService interface {
	Search(ctx context.Context, city string) ([]pickup.Point, error)
	Select(ctx context.Context, in service.SelectInput) (service.Selection, error)
	SelectionFor(ctx context.Context, cartID string) (service.Selection, error)
}

// PickupHandler serves the storefront's Packeta endpoints.
type PickupHandler struct {
	svc PickupService
	val *validator.Validator
}

func NewPickupHandler(svc PickupService, val *validator.Validator) *PickupHandler {
	return &PickupHandler{svc: svc, val: val}
}

// RegisterRoutes mounts the handler under rg (the /store/packeta group).
func (h *PickupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pickup-points", h.ListPickupPoints)
	rg.POST("/select-pickup-point", h.SelectPickupPoint)
	rg.GET("/carts/:cart_id/pickup-point", h.GetCartPickupPoint)
}

// PickupPointsResponse is the lookup response body.
type PickupPointsResponse struct {
	PickupPoints []pickup.Point `json:"pickup_points"`
}

// SelectPickupPointRequest is the selection body posted by the widget.
type SelectPickupPointRequest struct {
	CartID             string `json:"cart_id" validate:"required,notblank,max=128"`
	PickupPointID      string `json:"pickup_point_id" validate:"required,notblank,max=64"`
	PickupPointName    string `json:"pickup_point_name" validate:"required,notblank,max=256"`
	PickupPointAddress string `json:"pickup_point_address" validate:"required,notblank,max=512"`
}

// SelectionResponse is returned after a selection is stored.
type SelectionResponse struct {
	CartID      string       `json:"cart_id"`
	PickupPoint pickup.Point `json:"pickup_point"`
	SelectionID string       `json:"selection_id"`
}

// ListPickupPoints returns the points for an optional city filter.
// GET /store/packeta/pickup-points?city=
func (h *PickupHandler) ListPickupPoints(c *gin.Context) {
	points, err := h.svc.Search(c.Request.Context(), c.Query("city"))
	if handleError(c, err) {
		return
	}
	writeOK(c, PickupPointsResponse{PickupPoints: points})
}

// SelectPickupPoint stores the chosen point for a cart.
// POST /store/packeta/select-pickup-point
func (h *PickupHandler) SelectPickupPoint(c *gin.Context) {
	var req SelectPickupPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	sel, err := h.svc.Select(c.Request.Context(), service.SelectInput{
		CartID:             req.CartID,
		PickupPointID:      req.PickupPointID,
		PickupPointName:    req.PickupPointName,
		PickupPointAddress: req.PickupPointAddress,
	})
	if handleError(c, err) {
		return
	}
	writeOK(c, SelectionResponse{CartID: sel.CartID, PickupPoint: sel.PickupPoint, SelectionID: sel.ID})
}

// GetCartPickupPoint returns the point stored for a cart.
// GET /store/packeta/carts/:cart_id/pickup-point
func (h *PickupHandler) GetCartPickupPoint(c *gin.Context) {
	sel, err := h.svc.SelectionFor(c.Request.Context(), c.Param("cart_id"))
	if handleError(c, err) {
		return
	}
	writeOK(c, SelectionResponse{CartID: sel.CartID, PickupPoint: sel.PickupPoint, SelectionID: sel.ID})
}
