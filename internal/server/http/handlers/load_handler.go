package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/server/http/dto"
	"github.com/polkiloo/freightdesk/internal/usecase"
	"github.com/polkiloo/freightdesk/internal/workflow"
)

// LoadHandler manages load endpoints for all roles.
type LoadHandler struct {
	facade LoadFacade
}

// NewLoadHandler constructs LoadHandler.
func NewLoadHandler(facade LoadFacade) *LoadHandler {
	return &LoadHandler{facade: facade}
}

// Submit handles POST /api/loads.
func (h *LoadHandler) Submit(c *gin.Context) {
	actor := CurrentActor(c)
	var req dto.LoadRequest
	if !bindJSON(c, &req) {
		return
	}

	load, err := h.facade.SubmitLoad(c.Request.Context(), actor.UserID, usecase.LoadInput{
		Pickup:       fromLocation(req.Pickup),
		Dropoff:      fromLocation(req.Dropoff),
		WeightTons:   req.WeightTons,
		TruckType:    req.TruckType,
		RateType:     req.RateType,
		ShipperPrice: req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLoadResponse(*load, actor))
}

// Mine handles GET /api/loads.
func (h *LoadHandler) Mine(c *gin.Context) {
	actor := CurrentActor(c)
	loads, err := h.facade.ShipperLoads(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoadResponses(loads, actor))
}

// Marketplace handles GET /api/marketplace/loads.
func (h *LoadHandler) Marketplace(c *gin.Context) {
	loads, err := h.facade.Marketplace(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoadResponses(loads, CurrentActor(c)))
}

// Get handles GET /api/loads/:id.
func (h *LoadHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor := CurrentActor(c)
	load, err := h.facade.Load(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoadResponse(*load, actor))
}

// AdminList handles GET /api/admin/loads. The status query accepts a comma
// separated list and may be repeated; no status lists everything.
func (h *LoadHandler) AdminList(c *gin.Context) {
	var statuses []model.LoadStatus
	for _, raw := range c.QueryArray("status") {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			s, ok := model.ParseLoadStatus(part)
			if !ok {
				abortWithError(c, http.StatusBadRequest, fmt.Errorf("%w: unknown status %q", domainErrors.ErrInvalidInput, part))
				return
			}
			statuses = append(statuses, s)
		}
	}

	loads, err := h.facade.LoadsByStatus(c.Request.Context(), statuses...)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoadResponses(loads, CurrentActor(c)))
}

// Price handles POST /api/admin/loads/:id/price.
func (h *LoadHandler) Price(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.PriceRequest
	if !bindJSON(c, &req) {
		return
	}

	load, err := h.facade.PriceLoad(c.Request.Context(), id, req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoadResponse(*load, CurrentActor(c)))
}

// Action handles POST /api/admin/loads/:id/actions/:action.
func (h *LoadHandler) Action(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	action, ok := workflow.ParseAction(c.Param("action"))
	if !ok {
		abortWithError(c, http.StatusBadRequest, fmt.Errorf("%w: unknown action %q", domainErrors.ErrInvalidInput, c.Param("action")))
		return
	}

	load, err := h.facade.ApplyAction(c.Request.Context(), id, action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoadResponse(*load, CurrentActor(c)))
}
