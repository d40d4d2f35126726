package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/cucumber/godog"

	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server/endpoints"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
	resumeIDs    map[string]string
	jobIDs       map[string]string
	sessionID    string
	lastOpening  string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:        tc,
		resumeIDs: make(map[string]string),
		jobIDs:    make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^a Rocket server is running$`, s.aRocketServerIsRunning)
	sc.Step(`^a registered user "([^"]*)" with password "([^"]*)"$`, s.aRegisteredUser)
	sc.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, s.iAmLoggedInAs)

	// Auth steps
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogInAs)
	sc.Step(`^I ask who I am$`, s.iAskWhoIAm)
	sc.Step(`^the identity email should be "([^"]*)"$`, s.theIdentityEmailShouldBe)
	sc.Step(`^I use the token "([^"]*)"$`, s.iUseTheToken)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should contain a session token$`, s.theResponseShouldContainASessionToken)

	// Resume steps
	sc.Step(`^I upload a resume titled "([^"]*)" with content:$`, s.iUploadAResume)
	sc.Step(`^I list my resumes$`, s.iListMyResumes)
	sc.Step(`^the resume list should contain (\d+) resumes?$`, s.theResumeListShouldContain)
	sc.Step(`^I fetch the resume "([^"]*)"$`, s.iFetchTheResume)
	sc.Step(`^I delete the resume "([^"]*)"$`, s.iDeleteTheResume)
	sc.Step(`^I request an analysis of "([^"]*)"$`, s.iRequestAnAnalysisOf)
	sc.Step(`^the analysis should score between (\d+) and (\d+)$`, s.theAnalysisShouldScoreBetween)
	sc.Step(`^the analysis kind should be "([^"]*)"$`, s.theAnalysisKindShouldBe)
	sc.Step(`^the resume "([^"]*)" should have status "([^"]*)"$`, s.theResumeShouldHaveStatus)

	// Job steps
	sc.Step(`^I create a job posting "([^"]*)" at "([^"]*)" with skills "([^"]*)" and description:$`, s.iCreateAJobPosting)
	sc.Step(`^I match the resume "([^"]*)" against the job "([^"]*)"$`, s.iMatchTheResumeAgainstTheJob)

	// Persona and conversation steps
	sc.Step(`^I list the available personas$`, s.iListTheAvailablePersonas)
	sc.Step(`^the persona catalog should include "([^"]*)"$`, s.thePersonaCatalogShouldInclude)
	sc.Step(`^I ask for a persona recommendation for goal "([^"]*)"$`, s.iAskForAPersonaRecommendation)
	sc.Step(`^the first recommended persona should be "([^"]*)"$`, s.theFirstRecommendedPersonaShouldBe)
	sc.Step(`^I start a coaching session with the "([^"]*)" persona$`, s.iStartACoachingSession)
	sc.Step(`^I fetch the coaching session$`, s.iFetchTheCoachingSession)
	sc.Step(`^the coach should greet me$`, s.theCoachShouldGreetMe)
	sc.Step(`^I tell the coach:$`, s.iTellTheCoach)
	sc.Step(`^the coach should reply$`, s.theCoachShouldReply)
	sc.Step(`^the session should be in phase "([^"]*)"$`, s.theSessionShouldBeInPhase)
	sc.Step(`^the transcript should have at least (\d+) messages$`, s.theTranscriptShouldHaveAtLeastMessages)
}

// HTTP plumbing

func (s *StepsContext) do(req *http.Request) error {
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	var err error
	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

func (s *StepsContext) postJSON(path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest("POST", s.tc.ServerURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *StepsContext) get(path string) error {
	req, err := http.NewRequest("GET", s.tc.ServerURL+path, nil)
	if err != nil {
		return err
	}
	return s.do(req)
}

func (s *StepsContext) del(path string) error {
	req, err := http.NewRequest("DELETE", s.tc.ServerURL+path, nil)
	if err != nil {
		return err
	}
	return s.do(req)
}

// Background steps

func (s *StepsContext) aRocketServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) aRegisteredUser(email, password string) error {
	if err := s.postJSON("/api/v1/auth/register", map[string]string{
		"email":     email,
		"password":  password,
		"full_name": "Integration Test",
	}); err != nil {
		return err
	}

	// Scenarios share the database, so an already-registered email from
	// an earlier scenario counts as success.
	if s.response.StatusCode == http.StatusCreated {
		return nil
	}
	if s.response.StatusCode == http.StatusUnprocessableEntity &&
		strings.Contains(string(s.responseBody), "already registered") {
		return nil
	}
	return fmt.Errorf("failed to register user: %d %s", s.response.StatusCode, string(s.responseBody))
}

func (s *StepsContext) iAmLoggedInAs(email, password string) error {
	if err := s.iLogInAs(email, password); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed: %d %s", s.response.StatusCode, string(s.responseBody))
	}
	return s.theResponseShouldContainASessionToken()
}

// Auth steps

func (s *StepsContext) iLogInAs(email, password string) error {
	s.authToken = ""
	if err := s.postJSON("/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusOK {
		var login endpoints.LoginResponse
		if err := json.Unmarshal(s.responseBody, &login); err != nil {
			return fmt.Errorf("failed to parse login response: %w", err)
		}
		s.authToken = login.Token
	}
	return nil
}

func (s *StepsContext) iAskWhoIAm() error {
	return s.get("/api/v1/auth/whoami")
}

func (s *StepsContext) theIdentityEmailShouldBe(email string) error {
	var whoami endpoints.WhoamiResponse
	if err := json.Unmarshal(s.responseBody, &whoami); err != nil {
		return fmt.Errorf("failed to parse whoami response: %w", err)
	}
	if whoami.Email != email {
		return fmt.Errorf("expected email %q, got %q", email, whoami.Email)
	}
	return nil
}

func (s *StepsContext) iUseTheToken(tok string) error {
	s.authToken = tok
	return nil
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldContainASessionToken() error {
	var login endpoints.LoginResponse
	if err := json.Unmarshal(s.responseBody, &login); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}
	if login.Token == "" {
		return fmt.Errorf("missing token in response: %s", string(s.responseBody))
	}
	if login.ExpiresAt.IsZero() {
		return fmt.Errorf("missing expires_at in response: %s", string(s.responseBody))
	}
	return nil
}

// Resume steps

func (s *StepsContext) iUploadAResume(title string, content *godog.DocString) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("title", title); err != nil {
		return err
	}

	// CreateFormFile would tag the part application/octet-stream, which
	// the extractor rejects; declare the real content type instead.
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="resume.txt"`)
	header.Set("Content-Type", "text/plain")
	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write([]byte(content.Content)); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequest("POST", s.tc.ServerURL+"/api/v1/resumes", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := s.do(req); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusCreated {
		var resume model.Resume
		if err := json.Unmarshal(s.responseBody, &resume); err != nil {
			return fmt.Errorf("failed to parse resume response: %w", err)
		}
		s.resumeIDs[title] = resume.ID
	}
	return nil
}

func (s *StepsContext) iListMyResumes() error {
	return s.get("/api/v1/resumes")
}

func (s *StepsContext) theResumeListShouldContain(expected int) error {
	var list endpoints.ListResumesResponse
	if err := json.Unmarshal(s.responseBody, &list); err != nil {
		return fmt.Errorf("failed to parse resume list: %w", err)
	}
	if len(list.Resumes) != expected {
		return fmt.Errorf("expected %d resumes, got %d", expected, len(list.Resumes))
	}
	if list.Count != int64(expected) {
		return fmt.Errorf("expected count %d, got %d", expected, list.Count)
	}
	return nil
}

func (s *StepsContext) iFetchTheResume(title string) error {
	return s.get("/api/v1/resumes/" + s.resumeID(title))
}

func (s *StepsContext) iDeleteTheResume(title string) error {
	return s.del("/api/v1/resumes/" + s.resumeID(title))
}

func (s *StepsContext) iRequestAnAnalysisOf(title string) error {
	req, err := http.NewRequest("POST", s.tc.ServerURL+"/api/v1/resumes/"+s.resumeID(title)+"/analysis", nil)
	if err != nil {
		return err
	}
	return s.do(req)
}

func (s *StepsContext) theAnalysisShouldScoreBetween(min, max int) error {
	var record model.Analysis
	if err := json.Unmarshal(s.responseBody, &record); err != nil {
		return fmt.Errorf("failed to parse analysis: %w", err)
	}
	if record.OverallScore < min || record.OverallScore > max {
		return fmt.Errorf("expected score between %d and %d, got %d", min, max, record.OverallScore)
	}
	return nil
}

func (s *StepsContext) theAnalysisKindShouldBe(kind string) error {
	var record model.Analysis
	if err := json.Unmarshal(s.responseBody, &record); err != nil {
		return fmt.Errorf("failed to parse analysis: %w", err)
	}
	if record.Kind != kind {
		return fmt.Errorf("expected analysis kind %q, got %q", kind, record.Kind)
	}
	return nil
}

func (s *StepsContext) theResumeShouldHaveStatus(title, status string) error {
	if err := s.iFetchTheResume(title); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch resume: %d %s", s.response.StatusCode, string(s.responseBody))
	}

	var resume model.Resume
	if err := json.Unmarshal(s.responseBody, &resume); err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	if resume.Status != status {
		return fmt.Errorf("expected status %q, got %q", status, resume.Status)
	}
	return nil
}

// resumeID resolves a title used in the feature to the server-assigned
// ID, falling back to the raw value so scenarios can probe bogus IDs.
func (s *StepsContext) resumeID(title string) string {
	if id, ok := s.resumeIDs[title]; ok {
		return id
	}
	return title
}

// Job steps

func (s *StepsContext) iCreateAJobPosting(title, company, skills string, description *godog.DocString) error {
	skillList := strings.Split(skills, ",")
	for i := range skillList {
		skillList[i] = strings.TrimSpace(skillList[i])
	}
	skillsJSON, err := json.Marshal(skillList)
	if err != nil {
		return err
	}

	if err := s.postJSON("/api/v1/jobs", map[string]interface{}{
		"title":       title,
		"company":     company,
		"description": description.Content,
		"skills":      json.RawMessage(skillsJSON),
	}); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusCreated {
		var job model.JobPosting
		if err := json.Unmarshal(s.responseBody, &job); err != nil {
			return fmt.Errorf("failed to parse job response: %w", err)
		}
		s.jobIDs[title] = job.ID
	}
	return nil
}

func (s *StepsContext) iMatchTheResumeAgainstTheJob(resumeTitle, jobTitle string) error {
	jobID, ok := s.jobIDs[jobTitle]
	if !ok {
		jobID = jobTitle
	}
	return s.postJSON("/api/v1/jobs/"+jobID+"/match", map[string]string{
		"resume_id": s.resumeID(resumeTitle),
	})
}
