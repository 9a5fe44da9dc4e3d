package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/freightdesk/internal/server/http/dto"
	"github.com/polkiloo/freightdesk/internal/usecase"
)

// IdempotencyKeyHeader carries the client key that makes invoice sends retry safe.
const IdempotencyKeyHeader = "Idempotency-Key"

// InvoiceHandler manages invoice composition, sending and approval.
type InvoiceHandler struct {
	facade InvoiceFacade
	now    func() time.Time
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(facade InvoiceFacade) *InvoiceHandler {
	return &InvoiceHandler{facade: facade, now: time.Now}
}

// Preview handles POST /api/admin/loads/:id/invoice/preview. Nothing is stored.
func (h *InvoiceHandler) Preview(c *gin.Context) {
	loadID, req, ok := h.bind(c)
	if !ok {
		return
	}
	draft, err := h.facade.PreviewInvoice(c.Request.Context(), loadID, req.Form())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(draft.Invoice(h.now())))
}

// Save handles POST /api/admin/loads/:id/invoice.
func (h *InvoiceHandler) Save(c *gin.Context) {
	loadID, req, ok := h.bind(c)
	if !ok {
		return
	}
	result, err := h.facade.SaveInvoice(c.Request.Context(), loadID, req.Form())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.result(result))
}

// Send handles POST /api/admin/loads/:id/invoice/send. A replayed send answers 200
// with the stored invoice; a fresh one answers 201.
func (h *InvoiceHandler) Send(c *gin.Context) {
	loadID, req, ok := h.bind(c)
	if !ok {
		return
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	result, err := h.facade.SendInvoice(c.Request.Context(), loadID, req.Form(), key)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := h.result(result)
	c.Header(IdempotencyKeyHeader, resp.IdempotencyKey)
	if result.Replayed {
		c.JSON(http.StatusOK, resp)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /api/loads/:id/invoice.
func (h *InvoiceHandler) Get(c *gin.Context) {
	loadID, ok := parseID(c, "id")
	if !ok {
		return
	}
	inv, err := h.facade.Invoice(c.Request.Context(), CurrentActor(c), loadID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(*inv))
}

// Approve handles POST /api/loads/:id/invoice/approve.
func (h *InvoiceHandler) Approve(c *gin.Context) {
	loadID, ok := parseID(c, "id")
	if !ok {
		return
	}
	inv, err := h.facade.ApproveInvoice(c.Request.Context(), CurrentActor(c), loadID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(*inv))
}

func (h *InvoiceHandler) bind(c *gin.Context) (int64, dto.InvoiceRequest, bool) {
	var req dto.InvoiceRequest
	loadID, ok := parseID(c, "id")
	if !ok {
		return 0, req, false
	}
	if !bindJSON(c, &req) {
		return 0, req, false
	}
	return loadID, req, true
}

func (h *InvoiceHandler) result(r usecase.InvoiceResult) dto.InvoiceResponse {
	if r.Invoice == nil {
		return toInvoiceResponse(r.Draft.Invoice(h.now()))
	}
	resp := toInvoiceResponse(*r.Invoice)
	resp.Replayed = r.Replayed
	return resp
}
