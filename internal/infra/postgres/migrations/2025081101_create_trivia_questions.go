package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

const createTriviaQuestionsSQL = `
CREATE TABLE IF NOT EXISTS trivia_questions (
	id BIGSERIAL PRIMARY KEY,
	category INTEGER NOT NULL,
	difficulty TEXT NOT NULL,
	prompt TEXT NOT NULL,
	correct_answer TEXT NOT NULL,
	incorrect_answers JSONB NOT NULL DEFAULT '[]'::jsonb
);
CREATE INDEX IF NOT EXISTS idx_trivia_questions_pick
	ON trivia_questions (category, difficulty);
`

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(createTriviaQuestionsSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`DROP TABLE IF EXISTS trivia_questions`)
			return err
		},
	)
}
