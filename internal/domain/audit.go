package domain

import (
	stdjson "encoding/json"
	"time"
)

type AuditAction string

const (
	AuditActionInsert AuditAction = "INSERT"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// AuditLog registra alterações feitas nas tabelas de negócio (tabela audit_logs)
type AuditLog struct {
	ID           string             `json:"id"`
	Action       AuditAction        `json:"action"`
	Table        string             `json:"table"`
	RecordID     string             `json:"record_id"`
	UserID       *string            `json:"user_id,omitempty"`
	PreviousData stdjson.RawMessage `json:"previous_data,omitempty"`
	NewData      stdjson.RawMessage `json:"new_data,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}
