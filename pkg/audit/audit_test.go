package audit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	event := AuthenticateEvent{
		Email:   "admin@example.com",
		UserID:  "user-1",
		IP:      "192.168.1.1",
		Success: true,
	}

	logger.Log(event)

	output := buf.String()

	// PRI = facility*8 + severity = 10*8 + 6 for a successful login
	if !strings.HasPrefix(output, "<86>1 ") {
		t.Errorf("Expected RFC5424 header '<86>1 ', got %q", output)
	}
	if !strings.Contains(output, "rocket") {
		t.Error("Expected app name 'rocket' in output")
	}
	if !strings.Contains(output, "authn") {
		t.Error("Expected message ID 'authn' in output")
	}
	if !strings.Contains(output, "admin@example.com") {
		t.Error("Expected user email in output")
	}
	if !strings.Contains(output, "192.168.1.1") {
		t.Error("Expected client IP in output")
	}
	if !strings.Contains(output, "successfully authenticated") {
		t.Error("Expected success message in output")
	}
}

func TestAuthenticateEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     AuthenticateEvent
		wantMsg   string
		wantSev   Severity
		wantFac   int
		wantMsgID string
	}{
		{
			name: "successful authentication",
			event: AuthenticateEvent{
				Email:   "admin@example.com",
				UserID:  "user-1",
				IP:      "10.0.0.1",
				Success: true,
			},
			wantMsg:   "successfully authenticated",
			wantSev:   SeverityInfo,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "authn",
		},
		{
			name: "failed authentication",
			event: AuthenticateEvent{
				Email:        "admin@example.com",
				IP:           "10.0.0.1",
				Success:      false,
				ErrorMessage: "invalid credentials",
			},
			wantMsg:   "failed to authenticate",
			wantSev:   SeverityWarning,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "authn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.Facility() != tt.wantFac {
				t.Errorf("Facility() = %v, want %v", tt.event.Facility(), tt.wantFac)
			}
			if tt.event.MessageID() != tt.wantMsgID {
				t.Errorf("MessageID() = %v, want %v", tt.event.MessageID(), tt.wantMsgID)
			}
		})
	}
}

func TestRegisterEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   RegisterEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name: "successful registration",
			event: RegisterEvent{
				Email:   "new@example.com",
				UserID:  "user-2",
				IP:      "10.0.0.1",
				Success: true,
			},
			wantMsg: "account created for new@example.com",
			wantSev: SeverityInfo,
		},
		{
			name: "duplicate email",
			event: RegisterEvent{
				Email:        "new@example.com",
				IP:           "10.0.0.1",
				Success:      false,
				ErrorMessage: "already registered",
			},
			wantMsg: "account creation failed",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.MessageID() != "register" {
				t.Errorf("MessageID() = %v, want 'register'", tt.event.MessageID())
			}
			if tt.event.Facility() != FacilityAuthPriv {
				t.Errorf("Facility() = %v, want FacilityAuthPriv", tt.event.Facility())
			}
		})
	}
}

func TestUploadEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   UploadEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name: "successful upload",
			event: UploadEvent{
				UserID:      "user-1",
				ResumeID:    "resume-1",
				Filename:    "resume.pdf",
				ContentType: "application/pdf",
				IP:          "10.0.0.1",
				Success:     true,
			},
			wantMsg: "uploaded resume resume.pdf (application/pdf)",
			wantSev: SeverityInfo,
		},
		{
			name: "rejected upload",
			event: UploadEvent{
				UserID:       "user-1",
				Filename:     "resume.exe",
				ContentType:  "application/octet-stream",
				IP:           "10.0.0.1",
				Success:      false,
				ErrorMessage: "unsupported content type",
			},
			wantMsg: "failed to upload resume",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.MessageID() != "upload" {
				t.Errorf("MessageID() = %v, want 'upload'", tt.event.MessageID())
			}
			if tt.event.Facility() != FacilityUser {
				t.Errorf("Facility() = %v, want FacilityUser", tt.event.Facility())
			}
		})
	}
}

func TestAnalyzeEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   AnalyzeEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name: "successful analysis",
			event: AnalyzeEvent{
				UserID:   "user-1",
				ResumeID: "resume-1",
				Engine:   "quality-v1",
				Score:    87,
				IP:       "10.0.0.1",
				Success:  true,
			},
			wantMsg: "analyzed resume resume-1 (score 87)",
			wantSev: SeverityInfo,
		},
		{
			name: "failed analysis",
			event: AnalyzeEvent{
				UserID:       "user-1",
				ResumeID:     "resume-1",
				IP:           "10.0.0.1",
				Success:      false,
				ErrorMessage: "resume has no content",
			},
			wantMsg: "failed to analyze resume",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.MessageID() != "analyze" {
				t.Errorf("MessageID() = %v, want 'analyze'", tt.event.MessageID())
			}
		})
	}
}

func TestDeleteEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   DeleteEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name: "successful deletion",
			event: DeleteEvent{
				UserID:   "user-1",
				ResumeID: "resume-1",
				IP:       "10.0.0.1",
				Success:  true,
			},
			wantMsg: "deleted resume",
			wantSev: SeverityNotice,
		},
		{
			name: "failed deletion",
			event: DeleteEvent{
				UserID:       "user-1",
				ResumeID:     "resume-9",
				IP:           "10.0.0.1",
				Success:      false,
				ErrorMessage: "not found",
			},
			wantMsg: "tried to delete resume",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.MessageID() != "delete" {
				t.Errorf("MessageID() = %v, want 'delete'", tt.event.MessageID())
			}
		})
	}
}

func TestMatchEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   MatchEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name: "successful match",
			event: MatchEvent{
				UserID:   "user-1",
				ResumeID: "resume-1",
				JobID:    "job-1",
				Score:    74,
				IP:       "10.0.0.1",
				Success:  true,
			},
			wantMsg: "matched resume resume-1 against job job-1 (score 74)",
			wantSev: SeverityInfo,
		},
		{
			name: "failed match",
			event: MatchEvent{
				UserID:       "user-1",
				ResumeID:     "resume-1",
				JobID:        "job-9",
				IP:           "10.0.0.1",
				Success:      false,
				ErrorMessage: "job not found",
			},
			wantMsg: "failed to match resume",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.MessageID() != "match" {
				t.Errorf("MessageID() = %v, want 'match'", tt.event.MessageID())
			}
		})
	}
}

func TestSessionEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   SessionEvent
		wantMsg string
	}{
		{
			name: "session start",
			event: SessionEvent{
				UserID:    "user-1",
				SessionID: "session-1",
				PersonaID: "story-coach",
				Action:    "start",
				IP:        "10.0.0.1",
				Success:   true,
			},
			wantMsg: "started session session-1 with persona story-coach",
		},
		{
			name: "message processed",
			event: SessionEvent{
				UserID:    "user-1",
				SessionID: "session-1",
				PersonaID: "story-coach",
				Phase:     "achievement_mining",
				Action:    "process",
				IP:        "10.0.0.1",
				Success:   true,
			},
			wantMsg: "processed a message in session session-1 (phase achievement_mining)",
		},
		{
			name: "session completed",
			event: SessionEvent{
				UserID:    "user-1",
				SessionID: "session-1",
				PersonaID: "story-coach",
				Action:    "complete",
				IP:        "10.0.0.1",
				Success:   true,
			},
			wantMsg: "completed session session-1",
		},
		{
			name: "failed start",
			event: SessionEvent{
				UserID:       "user-1",
				PersonaID:    "astrologer",
				Action:       "start",
				IP:           "10.0.0.1",
				Success:      false,
				ErrorMessage: "unknown persona",
			},
			wantMsg: "conversation start failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.MessageID() != "conversation" {
				t.Errorf("MessageID() = %v, want 'conversation'", tt.event.MessageID())
			}
		})
	}
}

func TestStructuredData(t *testing.T) {
	event := UploadEvent{
		UserID:      "user-1",
		ResumeID:    "resume-1",
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
		IP:          "10.0.0.1",
		Success:     true,
	}

	sd := event.StructuredData()

	if sd[SDIDAuth]["user"] != "user-1" {
		t.Errorf("StructuredData auth.user = %v, want 'user-1'", sd[SDIDAuth]["user"])
	}
	if sd[SDIDSubject]["resume"] != "resume-1" {
		t.Errorf("StructuredData subject.resume = %v, want 'resume-1'", sd[SDIDSubject]["resume"])
	}
	if sd[SDIDSubject]["filename"] != "resume.pdf" {
		t.Errorf("StructuredData subject.filename = %v, want 'resume.pdf'", sd[SDIDSubject]["filename"])
	}
	if sd[SDIDClient]["ip"] != "10.0.0.1" {
		t.Errorf("StructuredData client.ip = %v, want '10.0.0.1'", sd[SDIDClient]["ip"])
	}
	if sd[SDIDAction]["result"] != "success" {
		t.Errorf("StructuredData action.result = %v, want 'success'", sd[SDIDAction]["result"])
	}
}

func TestAuditToggle(t *testing.T) {
	// Save original state
	originalEnabled := auditEnabled
	defer func() {
		auditEnabled = originalEnabled
	}()

	// Test with audit disabled
	SetEnabled(false)
	if IsEnabled() {
		t.Error("Expected audit to be disabled")
	}

	// Test with audit enabled
	SetEnabled(true)
	if !IsEnabled() {
		t.Error("Expected audit to be enabled")
	}
}

func TestEscapeSDValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", `"simple"`},
		{`with"quote`, `"with\"quote"`},
		{`with\backslash`, `"with\\backslash"`},
		{`with]bracket`, `"with\]bracket"`},
		{`all"special\chars]`, `"all\"special\\chars\]"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeSDValue(tt.input)
			if got != tt.want {
				t.Errorf("escapeSDValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
