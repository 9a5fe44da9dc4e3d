package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/server/http/dto"
)

// BidHandler manages carrier bids and admin negotiation.
type BidHandler struct {
	facade BidFacade
}

// NewBidHandler constructs BidHandler.
func NewBidHandler(facade BidFacade) *BidHandler {
	return &BidHandler{facade: facade}
}

// Place handles POST /api/loads/:id/bids.
func (h *BidHandler) Place(c *gin.Context) {
	loadID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AmountRequest
	if !bindJSON(c, &req) {
		return
	}

	bid, err := h.facade.PlaceBid(c.Request.Context(), CurrentActor(c).UserID, loadID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBidResponse(*bid))
}

// AcceptPosted handles POST /api/loads/:id/accept.
func (h *BidHandler) AcceptPosted(c *gin.Context) {
	loadID, ok := parseID(c, "id")
	if !ok {
		return
	}
	bid, err := h.facade.AcceptPostedPrice(c.Request.Context(), CurrentActor(c).UserID, loadID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBidResponse(*bid))
}

// List handles GET /api/loads/:id/bids.
func (h *BidHandler) List(c *gin.Context) {
	loadID, ok := parseID(c, "id")
	if !ok {
		return
	}
	bids, err := h.facade.Bids(c.Request.Context(), CurrentActor(c), loadID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, toBidResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

// Counter handles POST /api/admin/bids/:id/counter.
func (h *BidHandler) Counter(c *gin.Context) {
	bidID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AmountRequest
	if !bindJSON(c, &req) {
		return
	}

	bid, err := h.facade.CounterBid(c.Request.Context(), bidID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBidResponse(*bid))
}

// Accept handles POST /api/admin/bids/:id/accept and POST /api/bids/:id/accept-counter.
func (h *BidHandler) Accept(c *gin.Context) {
	h.decide(c, func(c *gin.Context, bidID int64) (*model.Bid, error) {
		return h.facade.AcceptBid(c.Request.Context(), CurrentActor(c), bidID)
	})
}

// Reject handles POST /api/admin/bids/:id/reject.
func (h *BidHandler) Reject(c *gin.Context) {
	h.decide(c, func(c *gin.Context, bidID int64) (*model.Bid, error) {
		return h.facade.RejectBid(c.Request.Context(), bidID)
	})
}

func (h *BidHandler) decide(c *gin.Context, apply func(*gin.Context, int64) (*model.Bid, error)) {
	bidID, ok := parseID(c, "id")
	if !ok {
		return
	}
	bid, err := apply(c, bidID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBidResponse(*bid))
}
