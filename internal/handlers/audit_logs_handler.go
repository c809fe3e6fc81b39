package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logger *audit.Logger
}

func NewAuditLogsHandler(logger *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logger: logger}
}

// List is admin only; the route enforces the role.
func (h *AuditLogsHandler) List(c *gin.Context) {
	userID, err := uintQuery(c, "user_id")
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.logger.List(c.Request.Context(), audit.ListQuery{
		UserID: userID,
		Action: c.Query("action"),
		Limit:  limit,
	})
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.List(c, logs)
}
