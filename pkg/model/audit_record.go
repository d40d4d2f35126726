package model

import "time"

// AuditRecord is a persisted audit event. The live stream goes through
// pkg/audit's logger; this table is the optional queryable copy.
type AuditRecord struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MessageID string    `gorm:"column:message_id;not null" json:"message_id"`
	Severity  string    `gorm:"column:severity" json:"severity"`
	Subject   string    `gorm:"column:subject" json:"subject"`
	Actor     string    `gorm:"column:actor" json:"actor"`
	ClientIP  string    `gorm:"column:client_ip" json:"client_ip,omitempty"`
	Success   bool      `gorm:"column:success" json:"success"`
	Details   JSON      `gorm:"column:details;type:jsonb" json:"details,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (AuditRecord) TableName() string {
	return "audit_records"
}
