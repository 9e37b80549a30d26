package repository

import (
	"context"
	"fmt"
	"time"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/repository/models"
	"lms-quiz/internal/util"
)

// QuizCatalogDatabaseAdapter implements domain.QuizCatalog and domain.QuizWriter
// over the quizzes and quiz_questions tables.
type QuizCatalogDatabaseAdapter struct {
	db  DBTX
	now func() time.Time
}

func NewQuizCatalogDatabaseAdapter(db DBTX) *QuizCatalogDatabaseAdapter {
	return &QuizCatalogDatabaseAdapter{db: db, now: time.Now}
}

const selectQuizzesQuery = `SELECT
		id "id",
		module_id "module_id",
		title "title",
		description "description",
		time_limit_minutes "time_limit_minutes",
		passing_score "passing_score",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"
	FROM quizzes
	WHERE deleted_at IS NULL
	ORDER BY module_id, created_at, id`

const selectQuestionsQuery = `SELECT
		qq.id "id",
		qq.quiz_id "quiz_id",
		qq.question_key "question_key",
		qq.position "position",
		qq.question_text "question_text",
		qq.question_type "question_type",
		qq.options "options",
		qq.correct_answer "correct_answer",
		qq.explanation "explanation",
		qq.points "points"
	FROM quiz_questions qq
	JOIN quizzes q ON q.id = qq.quiz_id
	WHERE q.deleted_at IS NULL
	ORDER BY qq.quiz_id, qq.position`

// LoadQuizCatalog implements domain.QuizCatalog
func (a *QuizCatalogDatabaseAdapter) LoadQuizCatalog(ctx context.Context) ([]*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var quizRows []models.Quiz
	if err := exec.SelectContext(ctx, &quizRows, selectQuizzesQuery); err != nil {
		return nil, fmt.Errorf("failed to load quizzes: %w", err)
	}
	var questionRows []models.QuizQuestion
	if err := exec.SelectContext(ctx, &questionRows, selectQuestionsQuery); err != nil {
		return nil, fmt.Errorf("failed to load quiz questions: %w", err)
	}

	byQuiz := make(map[string][]models.QuizQuestion, len(quizRows))
	for _, row := range questionRows {
		byQuiz[row.QuizID] = append(byQuiz[row.QuizID], row)
	}

	quizzes := make([]*domain.Quiz, 0, len(quizRows))
	for i := range quizRows {
		quiz, err := toDomainQuiz(&quizRows[i], byQuiz[quizRows[i].ID])
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}

func toDomainQuiz(row *models.Quiz, questions []models.QuizQuestion) (*domain.Quiz, error) {
	quiz := &domain.Quiz{
		ID:               row.ID,
		ModuleID:         row.ModuleID,
		Title:            row.Title,
		Description:      row.Description.String,
		TimeLimitMinutes: row.TimeLimitMinutes,
		PassingScore:     row.PassingScore,
		Questions:        make([]domain.Question, 0, len(questions)),
	}
	for _, q := range questions {
		correct, err := domain.UnmarshalAnswer([]byte(q.CorrectAnswer))
		if err != nil {
			return nil, fmt.Errorf("quiz %s: question %s: invalid correct_answer: %w", row.ID, q.QuestionKey, err)
		}
		quiz.Questions = append(quiz.Questions, domain.Question{
			ID:          q.QuestionKey,
			Text:        q.QuestionText,
			Kind:        domain.QuestionKind(q.QuestionType),
			Options:     []string(q.Options),
			Correct:     correct,
			Explanation: q.Explanation.String,
			Points:      q.Points,
		})
	}
	return quiz, nil
}

const mergeQuizQuery = `MERGE INTO quizzes t
	USING (SELECT :1 AS id FROM dual) s
	ON (t.id = s.id)
	WHEN MATCHED THEN UPDATE SET
		t.module_id = :2, t.title = :3, t.description = :4,
		t.time_limit_minutes = :5, t.passing_score = :6,
		t.updated_at = :7, t.deleted_at = NULL
	WHEN NOT MATCHED THEN INSERT
		(id, module_id, title, description, time_limit_minutes, passing_score, created_at, updated_at)
		VALUES (:8, :9, :10, :11, :12, :13, :14, :15)`

const deleteQuestionsQuery = `DELETE FROM quiz_questions WHERE quiz_id = :1`

const insertQuestionQuery = `INSERT INTO quiz_questions
	(id, quiz_id, question_key, position, question_text, question_type, options, correct_answer, explanation, points)
	VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10)`

// SaveQuiz implements domain.QuizWriter. The quiz row is upserted and its
// questions replaced; run it inside a transaction to keep both consistent.
func (a *QuizCatalogDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	exec := GetExecutor(ctx, a.db)
	now := a.now()
	description := util.StringToNullString(quiz.Description)

	_, err := exec.ExecContext(ctx, mergeQuizQuery,
		quiz.ID,
		quiz.ModuleID, quiz.Title, description, quiz.TimeLimitMinutes, quiz.PassingScore, now,
		quiz.ID, quiz.ModuleID, quiz.Title, description, quiz.TimeLimitMinutes, quiz.PassingScore, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert quiz %s: %w", quiz.ID, err)
	}

	if _, err := exec.ExecContext(ctx, deleteQuestionsQuery, quiz.ID); err != nil {
		return fmt.Errorf("failed to clear questions of quiz %s: %w", quiz.ID, err)
	}

	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		correct, err := domain.MarshalAnswer(q.Correct)
		if err != nil {
			return fmt.Errorf("quiz %s: question %s: %w", quiz.ID, q.ID, err)
		}
		options, err := models.StringSlice(q.Options).Value()
		if err != nil {
			return fmt.Errorf("quiz %s: question %s: %w", quiz.ID, q.ID, err)
		}
		_, err = exec.ExecContext(ctx, insertQuestionQuery,
			util.NewULID(),
			quiz.ID,
			q.ID,
			i,
			q.Text,
			string(q.Kind),
			options,
			string(correct),
			util.StringToNullString(q.Explanation),
			q.Points,
		)
		if err != nil {
			return fmt.Errorf("failed to insert question %s of quiz %s: %w", q.ID, quiz.ID, err)
		}
	}
	return nil
}
