package controllers

import (
	"net/http"
	"strconv"

	"tokengate/utils"

	"github.com/gin-gonic/gin"
)

type AuditController struct{}

func NewAuditController() *AuditController {
	return &AuditController{}
}

// GetLogs returns the most recent audit entries, newest first.
func (c *AuditController) GetLogs(ctx *gin.Context) {
	limit := 100
	if v := ctx.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	logs, err := utils.GetRecentAuditLogs(limit)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "audit_unavailable",
			"message": "Audit log storage is not available",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"count": len(logs),
		"logs":  logs,
	})
}
