package audit

import "fmt"

// SessionEvent represents a coaching conversation audit event.
// Action is one of "start", "process" or "complete".
type SessionEvent struct {
	UserID       string
	SessionID    string
	PersonaID    string
	Phase        string
	Action       string
	IP           string
	Success      bool
	ErrorMessage string
}

func (e SessionEvent) MessageID() string {
	return "conversation"
}

func (e SessionEvent) Message() string {
	if e.Success {
		switch e.Action {
		case "start":
			return fmt.Sprintf("%s started session %s with persona %s", e.UserID, e.SessionID, e.PersonaID)
		case "complete":
			return fmt.Sprintf("%s completed session %s", e.UserID, e.SessionID)
		default:
			return fmt.Sprintf("%s processed a message in session %s (phase %s)", e.UserID, e.SessionID, e.Phase)
		}
	}
	msg := fmt.Sprintf("%s conversation %s failed in session %s", e.UserID, e.Action, e.SessionID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e SessionEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e SessionEvent) Facility() int {
	return FacilityUser
}

func (e SessionEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"session": e.SessionID,
			"persona": e.PersonaID,
		},
		SDIDClient: {
			"ip": e.IP,
		},
		SDIDAction: {
			"operation": e.Action,
			"result":    resultString(e.Success),
		},
	}
	if e.Phase != "" {
		sd[SDIDSubject]["phase"] = e.Phase
	}
	return sd
}

func (e SessionEvent) Actor() string    { return e.UserID }
func (e SessionEvent) Subject() string  { return e.SessionID }
func (e SessionEvent) ClientIP() string { return e.IP }
func (e SessionEvent) Succeeded() bool  { return e.Success }
