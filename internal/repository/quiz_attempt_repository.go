package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/repository/models"
)

const defaultPageSize = 10

// sqlxQuizAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxQuizAttemptRepository struct {
	db  DBTX
	now func() time.Time
}

func NewSQLXQuizAttemptRepository(db DBTX) domain.AttemptRepository {
	return &sqlxQuizAttemptRepository{db: db, now: time.Now}
}

func toModelAttempt(record *domain.AttemptRecord) (*models.QuizAttempt, error) {
	answers, err := json.Marshal(record.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}
	return &models.QuizAttempt{
		ID:          record.ID,
		UserID:      record.UserID,
		QuizID:      record.QuizID,
		Answers:     string(answers),
		Score:       record.Score,
		TotalPoints: record.TotalPoints,
		Passed:      record.Passed,
		Completion:  string(record.Completion),
		CompletedAt: record.CompletedAt,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}

func toDomainAttempt(row *models.QuizAttempt) (*domain.AttemptRecord, error) {
	answers := domain.AnswerMap{}
	if row.Answers != "" {
		if err := json.Unmarshal([]byte(row.Answers), &answers); err != nil {
			return nil, fmt.Errorf("attempt %s: invalid answers column: %w", row.ID, err)
		}
	}
	return &domain.AttemptRecord{
		Attempt: domain.Attempt{
			ID:          row.ID,
			QuizID:      row.QuizID,
			Answers:     answers,
			Score:       row.Score,
			TotalPoints: row.TotalPoints,
			Passed:      row.Passed,
			CompletedAt: row.CompletedAt,
			Completion:  domain.CompletionReason(row.Completion),
		},
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// A later attempt by the same user on the same quiz replaces the earlier row.
const upsertAttemptQuery = `MERGE INTO quiz_attempts t
	USING (SELECT :1 AS user_id, :2 AS quiz_id FROM dual) s
	ON (t.user_id = s.user_id AND t.quiz_id = s.quiz_id)
	WHEN MATCHED THEN UPDATE SET
		t.id = :3, t.answers = :4, t.score = :5, t.total_points = :6,
		t.passed = :7, t.completion = :8, t.completed_at = :9, t.updated_at = :10
	WHEN NOT MATCHED THEN INSERT
		(id, user_id, quiz_id, answers, score, total_points, passed, completion, completed_at, created_at, updated_at)
		VALUES (:11, :12, :13, :14, :15, :16, :17, :18, :19, :20, :21)`

// UpsertAttempt implements domain.AttemptRepository
func (r *sqlxQuizAttemptRepository) UpsertAttempt(ctx context.Context, record *domain.AttemptRecord) error {
	if record == nil {
		return fmt.Errorf("cannot save nil attempt")
	}
	now := r.now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	m, err := toModelAttempt(record)
	if err != nil {
		return err
	}

	_, err = GetExecutor(ctx, r.db).ExecContext(ctx, upsertAttemptQuery,
		m.UserID, m.QuizID,
		m.ID, m.Answers, m.Score, m.TotalPoints, m.Passed, m.Completion, m.CompletedAt, m.UpdatedAt,
		m.ID, m.UserID, m.QuizID, m.Answers, m.Score, m.TotalPoints, m.Passed, m.Completion, m.CompletedAt, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert quiz attempt: %w", err)
	}
	return nil
}

const attemptColumns = `id "id", user_id "user_id", quiz_id "quiz_id", answers "answers", score "score",
		total_points "total_points", passed "passed", completion "completion",
		completed_at "completed_at", created_at "created_at", updated_at "updated_at"`

// GetAttemptsByUserID implements domain.AttemptRepository
func (r *sqlxQuizAttemptRepository) GetAttemptsByUserID(ctx context.Context, userID string, pagination domain.Pagination) ([]domain.AttemptRecord, int, error) {
	exec := GetExecutor(ctx, r.db)

	limit := pagination.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	offset := pagination.Offset
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := exec.GetContext(ctx, &total, `SELECT COUNT(*) FROM quiz_attempts WHERE user_id = :1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count quiz attempts: %w", err)
	}

	// Oracle compatibility: ROW_NUMBER() window instead of LIMIT/OFFSET
	query := fmt.Sprintf(`SELECT %s FROM (
		SELECT qa.*, ROW_NUMBER() OVER (ORDER BY qa.completed_at DESC, qa.id DESC) rn
		FROM quiz_attempts qa
		WHERE qa.user_id = :1
	) WHERE rn > :2 AND rn <= :3 ORDER BY rn`, attemptColumns)

	var rows []models.QuizAttempt
	if err := exec.SelectContext(ctx, &rows, query, userID, offset, offset+limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list quiz attempts: %w", err)
	}

	records := make([]domain.AttemptRecord, 0, len(rows))
	for i := range rows {
		rec, err := toDomainAttempt(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *rec)
	}
	return records, total, nil
}

// GetAttempt implements domain.AttemptRepository
func (r *sqlxQuizAttemptRepository) GetAttempt(ctx context.Context, userID, quizID string) (*domain.AttemptRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM quiz_attempts WHERE user_id = :1 AND quiz_id = :2`, attemptColumns)

	var row models.QuizAttempt
	err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, userID, quizID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz attempt: %w", err)
	}
	return toDomainAttempt(&row)
}
