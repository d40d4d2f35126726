package audit

import "fmt"

// AuthenticateEvent represents a login attempt audit event
type AuthenticateEvent struct {
	Email        string
	UserID       string
	IP           string
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated", e.Email)
	}
	msg := fmt.Sprintf("%s failed to authenticate", e.Email)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Email,
		},
		SDIDClient: {
			"ip": e.IP,
		},
	}
	if e.UserID != "" {
		sd[SDIDAuth]["user_id"] = e.UserID
	}
	return sd
}

func (e AuthenticateEvent) Actor() string    { return e.Email }
func (e AuthenticateEvent) Subject() string  { return e.UserID }
func (e AuthenticateEvent) ClientIP() string { return e.IP }
func (e AuthenticateEvent) Succeeded() bool  { return e.Success }

// RegisterEvent represents an account creation audit event
type RegisterEvent struct {
	Email        string
	UserID       string
	IP           string
	Success      bool
	ErrorMessage string
}

func (e RegisterEvent) MessageID() string {
	return "register"
}

func (e RegisterEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("account created for %s", e.Email)
	}
	msg := fmt.Sprintf("account creation failed for %s", e.Email)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RegisterEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e RegisterEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RegisterEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Email,
		},
		SDIDClient: {
			"ip": e.IP,
		},
		SDIDAction: {
			"operation": "register",
			"result":    resultString(e.Success),
		},
	}
}

func (e RegisterEvent) Actor() string    { return e.Email }
func (e RegisterEvent) Subject() string  { return e.UserID }
func (e RegisterEvent) ClientIP() string { return e.IP }
func (e RegisterEvent) Succeeded() bool  { return e.Success }

func resultString(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
