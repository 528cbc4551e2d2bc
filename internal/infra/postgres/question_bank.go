package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/ukkpower/Netflix-Trivia/internal/domain"
)

// QuestionBank serves rounds from a self-hosted Postgres question table
// instead of the external trivia API.
type QuestionBank struct {
	pool *pgxpool.Pool
}

func NewQuestionBank(pool *pgxpool.Pool) *QuestionBank {
	return &QuestionBank{pool: pool}
}

func (b *QuestionBank) Fetch(ctx context.Context, category int, difficulty domain.Difficulty, count int) ([]domain.SourceQuestion, error) {
	rows, err := b.pool.Query(ctx,
		`SELECT prompt, correct_answer, incorrect_answers
		 FROM trivia_questions
		 WHERE category=$1 AND difficulty=$2
		 ORDER BY random()
		 LIMIT $3`,
		category, string(difficulty), count)
	if err != nil {
		return nil, fmt.Errorf("query question bank: %w", err)
	}
	defer rows.Close()

	var questions []domain.SourceQuestion
	for rows.Next() {
		var q domain.SourceQuestion
		var incorrect []byte
		if err := rows.Scan(&q.Prompt, &q.CorrectAnswer, &incorrect); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(incorrect, &q.IncorrectAnswers); err != nil {
			return nil, fmt.Errorf("unmarshal incorrect answers: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	if len(questions) < count {
		return nil, fmt.Errorf("question bank holds %d/%d questions for category %d (%s)",
			len(questions), count, category, difficulty)
	}
	return questions, nil
}
