// Package audit provides audit logging for Rocket operations.
//
// This package implements structured audit logging for security-relevant
// operations such as authentication attempts, resume uploads, analysis
// runs and coaching sessions.
//
// # Event Types
//
// The package defines event types for various operations:
//
//   - Authentication and registration events (success/failure)
//   - Resume upload, analysis and deletion events
//   - Job match events
//   - Coaching conversation events
//
// # Usage
//
//	audit.Log(audit.UploadEvent{
//		UserID:   userID,
//		ResumeID: resumeID,
//		Success:  true,
//	})
//
// Events are written as RFC5424 syslog lines to stdout and, when
// AUDIT_DATABASE_URL is set, copied to the audit_records table.
package audit
