package endpoints

import (
	"database/sql"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rocketresume/rocket/pkg/config"
	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server"
	"github.com/rocketresume/rocket/pkg/token"
)

// NewMockTestServer creates a server instance with a mocked database for
// unit testing. Returns the server, sqlmock instance, and any error.
func NewMockTestServer() (*server.Server, sqlmock.Sqlmock, error) {
	cfg := &config.RocketConfig{
		AllowedOrigins:  []string{"*"},
		APIListLimitMax: 100,
		MaxUploadBytes:  10 << 20,
	}

	tokens, err := token.NewIssuer("test-secret-key", time.Hour)
	if err != nil {
		return nil, nil, err
	}

	// Create sqlmock database
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}

	// Wrap with GORM
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		_ = mockDB.Close()
		return nil, nil, err
	}

	s := server.NewServer(cfg, gormDB, tokens, "127.0.0.1", "0")

	return s, mock, nil
}

// MockDB wraps sqlmock for easier test setup
type MockDB struct {
	DB     *sql.DB
	Mock   sqlmock.Sqlmock
	GormDB *gorm.DB
}

// NewMockDB creates a new mock database connection
func NewMockDB() (*MockDB, error) {
	db, mock, err := sqlmock.New()
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &MockDB{
		DB:     db,
		Mock:   mock,
		GormDB: gormDB,
	}, nil
}

// Close closes the mock database
func (m *MockDB) Close() error {
	return m.DB.Close()
}

// userColumns mirror the users table as gorm scans it.
var userColumns = []string{"id", "email", "password_digest", "full_name", "created_at", "updated_at"}

// ExpectUserByEmail sets up expectation for a user lookup by email
func (m *MockDB) ExpectUserByEmail(user *model.User) {
	rows := sqlmock.NewRows(userColumns).
		AddRow(user.ID, user.Email, user.PasswordDigest, user.FullName, user.CreatedAt, user.UpdatedAt)
	m.Mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs(user.Email).
		WillReturnRows(rows)
}

// ExpectUserNotFound sets up expectation for a missing user
func (m *MockDB) ExpectUserNotFound(email string) {
	m.Mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs(email).
		WillReturnRows(sqlmock.NewRows(userColumns))
}

// resumeColumns mirror the resumes table as gorm scans it.
var resumeColumns = []string{
	"id", "user_id", "title", "filename", "content_type", "storage_key",
	"content_text", "word_count", "status", "metadata", "created_at", "updated_at",
}

// ExpectResumeQuery sets up expectation for a resume lookup
func (m *MockDB) ExpectResumeQuery(resume *model.Resume) {
	rows := sqlmock.NewRows(resumeColumns).AddRow(
		resume.ID, resume.UserID, resume.Title, resume.Filename, resume.ContentType,
		resume.StorageKey, resume.ContentText, resume.WordCount, resume.Status,
		[]byte(nil), resume.CreatedAt, resume.UpdatedAt,
	)
	m.Mock.ExpectQuery(`SELECT .* FROM "resumes"`).
		WillReturnRows(rows)
}

// ExpectResumeNotFound sets up expectation for a missing resume
func (m *MockDB) ExpectResumeNotFound() {
	m.Mock.ExpectQuery(`SELECT .* FROM "resumes"`).
		WillReturnRows(sqlmock.NewRows(resumeColumns))
}

// jobColumns mirror the job_postings table as gorm scans it.
var jobColumns = []string{
	"id", "user_id", "title", "company", "location", "description",
	"skills", "seniority", "source_url", "created_at", "updated_at",
}

// ExpectJobQuery sets up expectation for a job posting lookup
func (m *MockDB) ExpectJobQuery(job *model.JobPosting) {
	rows := sqlmock.NewRows(jobColumns).AddRow(
		job.ID, job.UserID, job.Title, job.Company, job.Location, job.Description,
		[]byte(job.Skills), job.Seniority, job.SourceURL, job.CreatedAt, job.UpdatedAt,
	)
	m.Mock.ExpectQuery(`SELECT .* FROM "job_postings"`).
		WillReturnRows(rows)
}

// ExpectJobNotFound sets up expectation for a missing job posting
func (m *MockDB) ExpectJobNotFound() {
	m.Mock.ExpectQuery(`SELECT .* FROM "job_postings"`).
		WillReturnRows(sqlmock.NewRows(jobColumns))
}

// sessionColumns mirror the conversation_sessions table as gorm scans it.
var sessionColumns = []string{
	"id", "user_id", "persona_id", "phase", "status", "metadata", "created_at", "updated_at",
}

// ExpectSessionQuery sets up expectation for a session lookup
func (m *MockDB) ExpectSessionQuery(session *model.ConversationSession) {
	rows := sqlmock.NewRows(sessionColumns).AddRow(
		session.ID, session.UserID, session.PersonaID, session.Phase,
		session.Status, []byte(session.Metadata), session.CreatedAt, session.UpdatedAt,
	)
	m.Mock.ExpectQuery(`SELECT .* FROM "conversation_sessions"`).
		WillReturnRows(rows)
}

// ExpectSessionNotFound sets up expectation for a missing session
func (m *MockDB) ExpectSessionNotFound() {
	m.Mock.ExpectQuery(`SELECT .* FROM "conversation_sessions"`).
		WillReturnRows(sqlmock.NewRows(sessionColumns))
}

// ExpectInsert sets up expectation for a transactional insert into table
func (m *MockDB) ExpectInsert(table string) {
	m.Mock.ExpectBegin()
	m.Mock.ExpectExec(`INSERT INTO "` + table + `"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	m.Mock.ExpectCommit()
}

// ExpectUpdate sets up expectation for a transactional update of table
func (m *MockDB) ExpectUpdate(table string) {
	m.Mock.ExpectBegin()
	m.Mock.ExpectExec(`UPDATE "` + table + `" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	m.Mock.ExpectCommit()
}

// ExpectBeginCommit sets up expectation for transaction begin and commit
func (m *MockDB) ExpectBeginCommit() {
	m.Mock.ExpectBegin()
	m.Mock.ExpectCommit()
}

// ExpectBeginRollback sets up expectation for transaction begin and rollback
func (m *MockDB) ExpectBeginRollback() {
	m.Mock.ExpectBegin()
	m.Mock.ExpectRollback()
}

// VerifyExpectations checks that all expectations were met
func (m *MockDB) VerifyExpectations() error {
	return m.Mock.ExpectationsWereMet()
}
