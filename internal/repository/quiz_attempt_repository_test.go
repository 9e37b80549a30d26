package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"lms-quiz/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

var repoNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

var attemptRowColumns = []string{"id", "user_id", "quiz_id", "answers", "score", "total_points", "passed", "completion", "completed_at", "created_at", "updated_at"}

func TestUpsertAttempt(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := &sqlxQuizAttemptRepository{db: db, now: func() time.Time { return repoNow }}

	record := &domain.AttemptRecord{
		Attempt: domain.Attempt{
			ID:          "01HXATTEMPT",
			QuizID:      "1",
			Answers:     domain.AnswerMap{"q1": domain.SingleAnswer("B"), "q2": domain.NewMultiAnswer("A", "C")},
			Score:       10,
			TotalPoints: 15,
			Passed:      false,
			CompletedAt: repoNow.Add(-time.Minute),
			Completion:  domain.CompletionSubmitted,
		},
		UserID: "user-1",
	}
	answersJSON := `{"q1":"B","q2":["A","C"]}`

	mock.ExpectExec(regexp.QuoteMeta("MERGE INTO quiz_attempts t")).
		WithArgs(
			"user-1", "1",
			"01HXATTEMPT", answersJSON, 10.0, 15.0, false, "submitted", record.CompletedAt, repoNow,
			"01HXATTEMPT", "user-1", "1", answersJSON, 10.0, 15.0, false, "submitted", record.CompletedAt, repoNow, repoNow,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertAttempt(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, repoNow, record.CreatedAt)
	assert.Equal(t, repoNow, record.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertAttempt_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuizAttemptRepository(db)

	mock.ExpectExec("MERGE INTO quiz_attempts").WillReturnError(errors.New("ORA-00001"))

	err := repo.UpsertAttempt(context.Background(), &domain.AttemptRecord{UserID: "u", Attempt: domain.Attempt{ID: "a", QuizID: "q"}})
	assert.ErrorContains(t, err, "failed to upsert quiz attempt")
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Error(t, repo.UpsertAttempt(context.Background(), nil))
}

func TestGetAttemptsByUserID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuizAttemptRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM quiz_attempts WHERE user_id = :1")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	rows := sqlmock.NewRows(attemptRowColumns).
		AddRow("a2", "user-1", "2", `{"q1":"Empathize"}`, 10.0, 25.0, false, "timed_out", repoNow, repoNow, repoNow).
		AddRow("a1", "user-1", "1", `{}`, 50.0, 50.0, true, "submitted", repoNow.Add(-time.Hour), repoNow, repoNow)
	mock.ExpectQuery(regexp.QuoteMeta("ROW_NUMBER() OVER (ORDER BY qa.completed_at DESC, qa.id DESC)")).
		WithArgs("user-1", 0, 2).
		WillReturnRows(rows)

	records, total, err := repo.GetAttemptsByUserID(context.Background(), "user-1", domain.Pagination{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, records, 2)

	assert.Equal(t, "a2", records[0].ID)
	assert.Equal(t, domain.CompletionTimedOut, records[0].Completion)
	assert.Equal(t, domain.SingleAnswer("Empathize"), records[0].Answers["q1"])
	assert.True(t, records[1].Passed)
	assert.Empty(t, records[1].Answers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAttemptsByUserID_DefaultsPaging(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuizAttemptRepository(db)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("ROW_NUMBER").WithArgs("user-1", 0, defaultPageSize).
		WillReturnRows(sqlmock.NewRows(attemptRowColumns))

	records, total, err := repo.GetAttemptsByUserID(context.Background(), "user-1", domain.Pagination{Limit: -1, Offset: -5})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAttempt(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXQuizAttemptRepository(db)
	query := regexp.QuoteMeta("FROM quiz_attempts WHERE user_id = :1 AND quiz_id = :2")

	mock.ExpectQuery(query).WithArgs("user-1", "1").
		WillReturnRows(sqlmock.NewRows(attemptRowColumns).
			AddRow("a1", "user-1", "1", `{"q1":["A","B"]}`, 5.0, 15.0, false, "submitted", repoNow, repoNow, repoNow))

	rec, err := repo.GetAttempt(context.Background(), "user-1", "1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, domain.MultiAnswer{"A", "B"}, rec.Answers["q1"])

	mock.ExpectQuery(query).WithArgs("user-1", "9").WillReturnError(sql.ErrNoRows)
	rec, err = repo.GetAttempt(context.Background(), "user-1", "9")
	assert.NoError(t, err)
	assert.Nil(t, rec)

	mock.ExpectQuery(query).WithArgs("user-1", "2").
		WillReturnRows(sqlmock.NewRows(attemptRowColumns).
			AddRow("a3", "user-1", "2", `{"q1":7}`, 0.0, 15.0, false, "submitted", repoNow, repoNow, repoNow))
	_, err = repo.GetAttempt(context.Background(), "user-1", "2")
	assert.ErrorContains(t, err, "invalid answers column")

	assert.NoError(t, mock.ExpectationsWereMet())
}
