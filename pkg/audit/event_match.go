package audit

import "fmt"

// MatchEvent represents a job match audit event
type MatchEvent struct {
	UserID       string
	ResumeID     string
	JobID        string
	Score        int
	IP           string
	Success      bool
	ErrorMessage string
}

func (e MatchEvent) MessageID() string {
	return "match"
}

func (e MatchEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s matched resume %s against job %s (score %d)", e.UserID, e.ResumeID, e.JobID, e.Score)
	}
	msg := fmt.Sprintf("%s failed to match resume %s against job %s", e.UserID, e.ResumeID, e.JobID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e MatchEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e MatchEvent) Facility() int {
	return FacilityUser
}

func (e MatchEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"resume": e.ResumeID,
			"job":    e.JobID,
		},
		SDIDClient: {
			"ip": e.IP,
		},
		SDIDAction: {
			"operation": "match",
			"result":    resultString(e.Success),
		},
	}
}

func (e MatchEvent) Actor() string    { return e.UserID }
func (e MatchEvent) Subject() string  { return e.ResumeID }
func (e MatchEvent) ClientIP() string { return e.IP }
func (e MatchEvent) Succeeded() bool  { return e.Success }
