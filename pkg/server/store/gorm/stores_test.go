package gorm

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server/store"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	return gormDB, mock
}

func TestUsersStoreFetchUserByEmail(t *testing.T) {
	gormDB, mock := newMockDB(t)
	users := NewUsersStore(gormDB)

	rows := sqlmock.NewRows([]string{"id", "email", "password_digest", "full_name"}).
		AddRow("user-1", "dev@example.com", []byte("digest"), "Dev Example")
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("dev@example.com").
		WillReturnRows(rows)

	user, err := users.FetchUserByEmail("dev@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Dev Example", user.FullName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStoreFetchUserByEmailNotFound(t *testing.T) {
	gormDB, mock := newMockDB(t)
	users := NewUsersStore(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err := users.FetchUserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStoreCreateUserAssignsID(t *testing.T) {
	gormDB, mock := newMockDB(t)
	users := NewUsersStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user := &model.User{Email: "dev@example.com", PasswordDigest: []byte("digest")}
	require.NoError(t, users.CreateUser(user))
	assert.NotEmpty(t, user.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStoreCreateUserDuplicateEmail(t *testing.T) {
	gormDB, mock := newMockDB(t)
	users := NewUsersStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))
	mock.ExpectRollback()

	err := users.CreateUser(&model.User{Email: "dev@example.com"})
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResumesStoreFetchResumeScopedToOwner(t *testing.T) {
	gormDB, mock := newMockDB(t)
	resumes := NewResumesStore(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "resumes"`).
		WithArgs("resume-1", "user-2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}))

	_, err := resumes.FetchResume("user-2", "resume-1")
	assert.ErrorIs(t, err, store.ErrResumeNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResumesStoreList(t *testing.T) {
	gormDB, mock := newMockDB(t)
	resumes := NewResumesStore(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM resumes`).
		WithArgs("user-1", "%engineer%", "%engineer%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "status", "created_at"}).
		AddRow("resume-2", "user-1", "Engineer v2", model.ResumeStatusAnalyzed, now).
		AddRow("resume-1", "user-1", "Engineer v1", model.ResumeStatusAnalyzed, now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT \* FROM resumes`).
		WithArgs("user-1", "%engineer%", "%engineer%", 10).
		WillReturnRows(rows)

	list, total, err := resumes.ListResumes("user-1", "engineer", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, "resume-2", list[0].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResumesStoreDeleteNotFound(t *testing.T) {
	gormDB, mock := newMockDB(t)
	resumes := NewResumesStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "resumes"`).
		WithArgs("resume-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := resumes.DeleteResume("user-1", "resume-1")
	assert.ErrorIs(t, err, store.ErrResumeNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobsStoreFetchJobIncludesGlobal(t *testing.T) {
	gormDB, mock := newMockDB(t)
	jobs := NewJobsStore(gormDB)

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "seniority"}).
		AddRow("job-1", nil, "Backend Engineer", "senior")
	mock.ExpectQuery(`SELECT \* FROM "job_postings"`).
		WithArgs("job-1", "user-1").
		WillReturnRows(rows)

	job, err := jobs.FetchJob("user-1", "job-1")
	require.NoError(t, err)
	assert.Nil(t, job.UserID)
	assert.Equal(t, "Backend Engineer", job.Title)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobsStoreDeleteIgnoresGlobal(t *testing.T) {
	gormDB, mock := newMockDB(t)
	jobs := NewJobsStore(gormDB)

	// Global postings have NULL user_id, so the owner-scoped delete
	// matches nothing.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "job_postings"`).
		WithArgs("job-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := jobs.DeleteJob("user-1", "job-1")
	assert.ErrorIs(t, err, store.ErrJobNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplatesStoreUpsert(t *testing.T) {
	gormDB, mock := newMockDB(t)
	templates := NewTemplatesStore(gormDB)

	mock.ExpectExec(`INSERT INTO resume_templates`).
		WithArgs("modern", "Modern", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := templates.UpsertTemplate(&model.ResumeTemplate{
		ID:       "modern",
		Name:     "Modern",
		Accent:   "#2563eb",
		Sections: model.MustJSON([]string{"summary", "experience"}),
	})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationsStoreUpdateSession(t *testing.T) {
	gormDB, mock := newMockDB(t)
	conversations := NewConversationsStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "conversation_sessions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := conversations.UpdateSession(&model.ConversationSession{
		ID:     "session-1",
		Phase:  "story_discovery",
		Status: model.SessionStatusActive,
	})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysesStoreLatestAnalysisNotFound(t *testing.T) {
	gormDB, mock := newMockDB(t)
	analyses := NewAnalysesStore(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "analyses"`).
		WithArgs("resume-1", model.AnalysisKindQuality).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := analyses.LatestAnalysis("resume-1", model.AnalysisKindQuality)
	assert.ErrorIs(t, err, store.ErrAnalysisNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsStoreEntityCounts(t *testing.T) {
	gormDB, mock := newMockDB(t)
	stats := NewStatsStore(gormDB)

	for _, row := range []struct {
		table string
		count int64
	}{
		{"users", 3},
		{"resumes", 5},
		{"job_postings", 7},
		{"conversation_sessions", 2},
		{"analyses", 9},
	} {
		mock.ExpectQuery(`SELECT count\(.\) FROM "` + row.table + `"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(row.count))
	}

	counts, err := stats.EntityCounts()
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Users)
	assert.Equal(t, int64(5), counts.Resumes)
	assert.Equal(t, int64(7), counts.Jobs)
	assert.Equal(t, int64(2), counts.Sessions)
	assert.Equal(t, int64(9), counts.Analyses)

	require.NoError(t, mock.ExpectationsWereMet())
}
