package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/pricing"
	"github.com/polkiloo/freightdesk/internal/server/http/dto"
)

// PricingHandler exposes the price estimator to admins.
type PricingHandler struct {
	facade LoadFacade
}

// NewPricingHandler constructs PricingHandler.
func NewPricingHandler(facade LoadFacade) *PricingHandler {
	return &PricingHandler{facade: facade}
}

// QuoteLoad handles GET /api/admin/loads/:id/quote.
func (h *PricingHandler) QuoteLoad(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	load, quote, err := h.facade.QuoteForLoad(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(load.ID, quote))
}

// Estimate handles POST /api/admin/pricing/estimate.
func (h *PricingHandler) Estimate(c *gin.Context) {
	var req dto.EstimateRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Pickup) == "" || strings.TrimSpace(req.Dropoff) == "" {
		abortWithError(c, http.StatusBadRequest, fmt.Errorf("%w: pickup and dropoff are required", domainErrors.ErrInvalidInput))
		return
	}
	if req.WeightTons.IsNegative() {
		abortWithError(c, http.StatusUnprocessableEntity, fmt.Errorf("%w: weight must not be negative", domainErrors.ErrInvalidAmount))
		return
	}

	truck, _ := model.ParseTruckType(req.TruckType)
	quote := h.facade.EstimatePrice(c.Request.Context(), pricing.Input{
		Pickup:     req.Pickup,
		Dropoff:    req.Dropoff,
		TruckType:  truck,
		WeightTons: req.WeightTons,
	})
	c.JSON(http.StatusOK, toQuoteResponse(0, quote))
}
