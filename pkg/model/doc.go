// Package model defines the database models for Rocket.
//
// This package contains GORM models that map to the Rocket PostgreSQL
// schema created by db/migrations.
//
// # Core Models
//
//   - User: accounts that own resumes and coaching sessions
//   - Resume: uploaded resume documents plus their extracted text
//   - JobPosting: job descriptions resumes are matched against
//   - ResumeTemplate: layout presets served to the frontend
//   - PersonaProfile: coaching persona catalog rows
//   - ConversationSession / ConversationMessage: coaching conversations
//   - Analysis: persisted quality and match engine runs
//   - AuditRecord: queryable copy of audit events
//
// # Database Schema
//
// The database uses PostgreSQL with the following key tables:
//
//   - users: accounts and password digests
//   - resumes: uploaded documents and extracted text
//   - job_postings: job descriptions (per-user and seeded global rows)
//   - resume_templates: layout presets keyed by slug
//   - persona_profiles: coaching persona catalog keyed by slug
//   - conversation_sessions / conversation_messages: coaching history
//   - analyses: quality and match engine results
//   - audit_records: audit event copies
//
// Unstructured fields (resume metadata, skill lists, persona styles,
// engine breakdowns) are stored as jsonb through the JSON column type.
// Primary keys are application-generated: UUIDs for user data, stable
// slugs for catalog rows. Stores generate the UUIDs at insert time;
// models carry no hooks.
package model
