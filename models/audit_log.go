package models

import (
	"time"
)

type AuditLog struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventType   string    `gorm:"size:100;index" json:"event_type"`
	EventAction string    `gorm:"size:100;index" json:"event_action"`
	IPAddress   string    `gorm:"size:45" json:"ip_address"`
	UserAgent   string    `gorm:"size:500" json:"user_agent"`
	Resource    string    `gorm:"size:255" json:"resource"`
	Details     string    `gorm:"type:text" json:"details"`
	Status      string    `gorm:"size:50" json:"status"`
	ErrorMsg    string    `gorm:"type:text" json:"error_msg"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

type AuditEventType string

const (
	AuditEventOAuth    AuditEventType = "oauth"
	AuditEventAPI      AuditEventType = "api"
	AuditEventSecurity AuditEventType = "security"
)

type AuditEventAction string

const (
	AuditActionLogin        AuditEventAction = "login"
	AuditActionCallback     AuditEventAction = "callback"
	AuditActionTokenRefresh AuditEventAction = "token_refresh"
	AuditActionError        AuditEventAction = "error"
	AuditActionWarning      AuditEventAction = "warning"
)
