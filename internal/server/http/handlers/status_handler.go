package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/freightdesk/internal/server/http/dto"
	"github.com/polkiloo/freightdesk/internal/workflow"
)

// StatusHandler serves the status display table used by clients to render badges.
type StatusHandler struct{}

// NewStatusHandler constructs StatusHandler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// List handles GET /api/statuses.
func (h *StatusHandler) List(c *gin.Context) {
	catalog := workflow.Catalog()
	resp := make([]dto.StatusEntry, 0, len(catalog))
	for _, e := range catalog {
		resp = append(resp, dto.StatusEntry{
			Status:      string(e.Status),
			Display:     toDisplay(e.Display),
			AdminAction: toAdminAction(e.AdminAction),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Resolve handles GET /api/statuses/:status. Unknown statuses resolve to a
// neutral badge showing the raw value and no admin action.
func (h *StatusHandler) Resolve(c *gin.Context) {
	raw := c.Param("status")
	resp := dto.StatusEntry{Status: raw, Display: toDisplay(workflow.ResolveStateDisplay(raw))}
	if a, ok := workflow.ResolveAdminAction(raw); ok {
		resp.AdminAction = toAdminAction(&a)
	}
	c.JSON(http.StatusOK, resp)
}
