// Package store provides storage abstractions for the resume server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// This enables easier testing with mocks and potential support for different
// storage backends.
//
// # Available Stores
//
//   - UsersStore: account creation and lookup
//   - ResumesStore: resume rows and their lifecycle status
//   - JobsStore: job postings, both user-owned and global
//   - TemplatesStore: the resume template catalog
//   - PersonasStore: coaching persona profiles
//   - ConversationsStore: coaching sessions and transcripts
//   - AnalysesStore: persisted analysis runs
//   - StatsStore: row counts for the system status endpoint
//   - HealthStore: database connectivity checks
//
// # Usage
//
//	users := gorm.NewUsersStore(db)
//	user, err := users.FetchUserByEmail("dev@example.com")
//	if err != nil {
//	    if errors.Is(err, store.ErrUserNotFound) {
//	        // Handle unknown account
//	    }
//	}
package store
