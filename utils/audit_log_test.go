package utils

import (
	"testing"
	"time"

	"tokengate/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuditDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	InitAuditLog(db)
	t.Cleanup(func() { InitAuditLog(nil) })
}

func TestLogOAuthEvent(t *testing.T) {
	setupAuditDB(t)

	err := LogOAuthEvent(models.AuditActionCallback, "127.0.0.1", "test-agent", true, map[string]interface{}{
		"scope": "user-read-private",
	})
	if err != nil {
		t.Fatalf("LogOAuthEvent failed: %v", err)
	}

	logs, err := GetRecentAuditLogs(10)
	if err != nil {
		t.Fatalf("GetRecentAuditLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(logs))
	}

	entry := logs[0]
	if entry.EventType != string(models.AuditEventOAuth) {
		t.Errorf("Expected event_type oauth, got %s", entry.EventType)
	}
	if entry.EventAction != string(models.AuditActionCallback) {
		t.Errorf("Expected event_action callback, got %s", entry.EventAction)
	}
	if entry.Status != "success" {
		t.Errorf("Expected status success, got %s", entry.Status)
	}
	if entry.IPAddress != "127.0.0.1" {
		t.Errorf("Expected ip 127.0.0.1, got %s", entry.IPAddress)
	}
}

func TestLogOAuthEventFailureStatus(t *testing.T) {
	setupAuditDB(t)

	if err := LogOAuthEvent(models.AuditActionTokenRefresh, "127.0.0.1", "test-agent", false, nil); err != nil {
		t.Fatalf("LogOAuthEvent failed: %v", err)
	}

	logs, _ := GetRecentAuditLogs(10)
	if len(logs) != 1 || logs[0].Status != "error" {
		t.Error("Expected a single entry with status error")
	}
}

func TestLogSecurityEvent(t *testing.T) {
	setupAuditDB(t)

	if err := LogSecurityEvent("missing_code", "10.0.0.1", "agent", "oauth", "No authorization code received"); err != nil {
		t.Fatalf("LogSecurityEvent failed: %v", err)
	}

	logs, _ := GetRecentAuditLogs(10)
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(logs))
	}
	if logs[0].EventType != string(models.AuditEventSecurity) {
		t.Errorf("Expected event_type security, got %s", logs[0].EventType)
	}
}

func TestAuditLogWithoutDB(t *testing.T) {
	InitAuditLog(nil)

	if err := LogOAuthEvent(models.AuditActionLogin, "", "", true, nil); err == nil {
		t.Error("Expected error when audit DB is not initialized")
	}
	if _, err := GetRecentAuditLogs(10); err == nil {
		t.Error("Expected error when audit DB is not initialized")
	}
}

func TestGetRecentAuditLogsNewestFirst(t *testing.T) {
	setupAuditDB(t)

	actions := []models.AuditEventAction{
		models.AuditActionLogin,
		models.AuditActionCallback,
		models.AuditActionTokenRefresh,
	}
	for _, action := range actions {
		if err := LogOAuthEvent(action, "127.0.0.1", "agent", true, nil); err != nil {
			t.Fatalf("LogOAuthEvent failed: %v", err)
		}
		time.Sleep(2 * time.Millisecond) // distinct created_at values
	}

	logs, err := GetRecentAuditLogs(10)
	if err != nil {
		t.Fatalf("GetRecentAuditLogs failed: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(logs))
	}

	if logs[0].EventAction != string(models.AuditActionTokenRefresh) {
		t.Errorf("Expected newest entry first (token_refresh), got %s", logs[0].EventAction)
	}
	if logs[2].EventAction != string(models.AuditActionLogin) {
		t.Errorf("Expected oldest entry last (login), got %s", logs[2].EventAction)
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].CreatedAt.After(logs[i-1].CreatedAt) {
			t.Errorf("entries not in newest-first order at index %d", i)
		}
	}
}

func TestGetRecentAuditLogsLimit(t *testing.T) {
	setupAuditDB(t)

	for i := 0; i < 5; i++ {
		LogOAuthEvent(models.AuditActionLogin, "127.0.0.1", "agent", true, nil)
	}

	logs, err := GetRecentAuditLogs(3)
	if err != nil {
		t.Fatalf("GetRecentAuditLogs failed: %v", err)
	}
	if len(logs) != 3 {
		t.Errorf("Expected 3 entries, got %d", len(logs))
	}

	// Out-of-range limits fall back to the default
	logs, err = GetRecentAuditLogs(0)
	if err != nil {
		t.Fatalf("GetRecentAuditLogs failed: %v", err)
	}
	if len(logs) != 5 {
		t.Errorf("Expected all 5 entries with default limit, got %d", len(logs))
	}
}
