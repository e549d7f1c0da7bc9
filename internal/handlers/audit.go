package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const auditPageSize = 200

func (h *Handler) ListAuditLogs(c *gin.Context) {
	logs, err := h.Activity.Recent(c.Request.Context(), auditPageSize)
	if err != nil {
		h.Log.Error("failed to load audit log", "error", err)
		c.String(http.StatusInternalServerError, "failed to load activity log")
		return
	}

	h.render(c, http.StatusOK, "audit.html", gin.H{
		"logs": logs,
	})
}
