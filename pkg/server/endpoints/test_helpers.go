package endpoints

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rocketresume/rocket/pkg/config"
	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server"
	"github.com/rocketresume/rocket/pkg/token"
)

// NewTestServer creates a server instance for testing.
// It requires a running PostgreSQL database.
func NewTestServer(dbURL string) (*server.Server, error) {
	db, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN:                  dbURL,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		return nil, err
	}

	cfg := &config.RocketConfig{
		AllowedOrigins:  []string{"*"},
		APIListLimitMax: 100,
		MaxUploadBytes:  10 << 20,
	}

	tokens, err := token.NewIssuer("test-secret-key", time.Hour)
	if err != nil {
		return nil, err
	}

	s := server.NewServer(cfg, db, tokens, "127.0.0.1", "0")
	return s, nil
}

// SetupTestUser creates a user with a known password and returns it.
func SetupTestUser(db *gorm.DB, email, password string) (*model.User, error) {
	user := &model.User{
		ID:    uuid.NewString(),
		Email: email,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	err := db.Exec(`
		INSERT INTO users (id, email, password_digest) VALUES (?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET password_digest = EXCLUDED.password_digest
	`, user.ID, user.Email, user.PasswordDigest).Error
	if err != nil {
		return nil, err
	}

	// The upsert keeps the original row's id on conflict.
	err = db.Raw(`SELECT id FROM users WHERE email = ?`, user.Email).Scan(&user.ID).Error
	return user, err
}

// CleanupTestData removes test data owned by users under the email domain.
func CleanupTestData(db *gorm.DB, emailDomain string) error {
	pattern := "%@" + emailDomain

	db.Exec(`DELETE FROM conversation_messages WHERE session_id IN
		(SELECT cs.id FROM conversation_sessions cs JOIN users u ON cs.user_id = u.id WHERE u.email LIKE ?)`, pattern)
	db.Exec(`DELETE FROM conversation_sessions WHERE user_id IN (SELECT id FROM users WHERE email LIKE ?)`, pattern)
	db.Exec(`DELETE FROM analyses WHERE resume_id IN
		(SELECT r.id FROM resumes r JOIN users u ON r.user_id = u.id WHERE u.email LIKE ?)`, pattern)
	db.Exec(`DELETE FROM resumes WHERE user_id IN (SELECT id FROM users WHERE email LIKE ?)`, pattern)
	db.Exec(`DELETE FROM job_postings WHERE user_id IN (SELECT id FROM users WHERE email LIKE ?)`, pattern)
	db.Exec(`DELETE FROM users WHERE email LIKE ?`, pattern)
	return nil
}

// CreateTestResume inserts an analyzable resume owned by the user.
func CreateTestResume(db *gorm.DB, userID, title, text string) (string, error) {
	id := uuid.NewString()
	err := db.Exec(`
		INSERT INTO resumes (id, user_id, title, filename, content_type, storage_key, content_text, word_count, status)
		VALUES (?, ?, ?, ?, 'text/plain', '', ?, ?, 'uploaded')
	`, id, userID, title, title+".txt", text, len(text)).Error
	return id, err
}
