package utils

import (
	"encoding/json"
	"fmt"
	"time"

	"tokengate/models"

	"gorm.io/gorm"
)

var auditDB *gorm.DB

func InitAuditLog(dbInstance *gorm.DB) {
	auditDB = dbInstance
}

type AuditLogEntry struct {
	EventType   models.AuditEventType   `json:"event_type"`
	EventAction models.AuditEventAction `json:"event_action"`
	IPAddress   string                  `json:"ip_address"`
	UserAgent   string                  `json:"user_agent"`
	Resource    string                  `json:"resource"`
	Details     map[string]interface{}  `json:"details"`
	Status      string                  `json:"status"`
	ErrorMsg    string                  `json:"error_msg"`
}

func LogAuditEvent(entry AuditLogEntry) error {
	if auditDB == nil {
		return fmt.Errorf("audit log database not initialized")
	}

	detailsJSON, _ := json.Marshal(entry.Details)

	log := &models.AuditLog{
		EventType:   string(entry.EventType),
		EventAction: string(entry.EventAction),
		IPAddress:   entry.IPAddress,
		UserAgent:   entry.UserAgent,
		Resource:    entry.Resource,
		Details:     string(detailsJSON),
		Status:      entry.Status,
		ErrorMsg:    entry.ErrorMsg,
		CreatedAt:   time.Now(),
	}

	return auditDB.Create(log).Error
}

// LogOAuthEvent records the outcome of an OAuth flow step. Details must never
// contain token material.
func LogOAuthEvent(action models.AuditEventAction, ipAddress, userAgent string, success bool, details map[string]interface{}) error {
	status := "success"
	if !success {
		status = "error"
	}

	return LogAuditEvent(AuditLogEntry{
		EventType:   models.AuditEventOAuth,
		EventAction: action,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Resource:    "spotify_oauth",
		Details:     details,
		Status:      status,
	})
}

func LogSecurityEvent(eventName, ipAddress, userAgent, resource, details string) error {
	return LogAuditEvent(AuditLogEntry{
		EventType:   models.AuditEventSecurity,
		EventAction: models.AuditActionWarning,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Resource:    resource,
		Details:     map[string]interface{}{"event": eventName, "info": details},
		Status:      "warning",
	})
}

func GetRecentAuditLogs(limit int) ([]models.AuditLog, error) {
	if auditDB == nil {
		return nil, fmt.Errorf("audit log database not initialized")
	}

	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var logs []models.AuditLog
	err := auditDB.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
