package store

// Counts is a snapshot of table sizes for the system status endpoint.
type Counts struct {
	Users    int64 `json:"users"`
	Resumes  int64 `json:"resumes"`
	Jobs     int64 `json:"job_postings"`
	Sessions int64 `json:"conversation_sessions"`
	Analyses int64 `json:"analyses"`
}

// StatsStore provides aggregate counts across the schema
type StatsStore interface {
	// EntityCounts counts the rows in each primary table.
	EntityCounts() (*Counts, error)
}
