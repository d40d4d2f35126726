package audit

import "fmt"

// UploadEvent represents a resume upload audit event
type UploadEvent struct {
	UserID       string
	ResumeID     string
	Filename     string
	ContentType  string
	IP           string
	Success      bool
	ErrorMessage string
}

func (e UploadEvent) MessageID() string {
	return "upload"
}

func (e UploadEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s uploaded resume %s (%s)", e.UserID, e.Filename, e.ContentType)
	}
	msg := fmt.Sprintf("%s failed to upload resume %s", e.UserID, e.Filename)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e UploadEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e UploadEvent) Facility() int {
	return FacilityUser
}

func (e UploadEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"filename":     e.Filename,
			"content_type": e.ContentType,
		},
		SDIDClient: {
			"ip": e.IP,
		},
		SDIDAction: {
			"operation": "upload",
			"result":    resultString(e.Success),
		},
	}
	if e.ResumeID != "" {
		sd[SDIDSubject]["resume"] = e.ResumeID
	}
	return sd
}

func (e UploadEvent) Actor() string    { return e.UserID }
func (e UploadEvent) Subject() string  { return e.ResumeID }
func (e UploadEvent) ClientIP() string { return e.IP }
func (e UploadEvent) Succeeded() bool  { return e.Success }

// AnalyzeEvent represents a quality analysis audit event
type AnalyzeEvent struct {
	UserID       string
	ResumeID     string
	Engine       string
	Score        int
	IP           string
	Success      bool
	ErrorMessage string
}

func (e AnalyzeEvent) MessageID() string {
	return "analyze"
}

func (e AnalyzeEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s analyzed resume %s (score %d)", e.UserID, e.ResumeID, e.Score)
	}
	msg := fmt.Sprintf("%s failed to analyze resume %s", e.UserID, e.ResumeID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AnalyzeEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AnalyzeEvent) Facility() int {
	return FacilityUser
}

func (e AnalyzeEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"resume": e.ResumeID,
			"engine": e.Engine,
		},
		SDIDClient: {
			"ip": e.IP,
		},
		SDIDAction: {
			"operation": "analyze",
			"result":    resultString(e.Success),
		},
	}
}

func (e AnalyzeEvent) Actor() string    { return e.UserID }
func (e AnalyzeEvent) Subject() string  { return e.ResumeID }
func (e AnalyzeEvent) ClientIP() string { return e.IP }
func (e AnalyzeEvent) Succeeded() bool  { return e.Success }

// DeleteEvent represents a resume deletion audit event
type DeleteEvent struct {
	UserID       string
	ResumeID     string
	IP           string
	Success      bool
	ErrorMessage string
}

func (e DeleteEvent) MessageID() string {
	return "delete"
}

func (e DeleteEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s deleted resume %s", e.UserID, e.ResumeID)
	}
	msg := fmt.Sprintf("%s tried to delete resume %s", e.UserID, e.ResumeID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e DeleteEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e DeleteEvent) Facility() int {
	return FacilityUser
}

func (e DeleteEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"resume": e.ResumeID,
		},
		SDIDClient: {
			"ip": e.IP,
		},
		SDIDAction: {
			"operation": "delete",
			"result":    resultString(e.Success),
		},
	}
}

func (e DeleteEvent) Actor() string    { return e.UserID }
func (e DeleteEvent) Subject() string  { return e.ResumeID }
func (e DeleteEvent) ClientIP() string { return e.IP }
func (e DeleteEvent) Succeeded() bool  { return e.Success }
