package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/ukkpower/Netflix-Trivia/internal/domain"
)

// QuestionSource fetches multiple-choice questions from a provider
// (external trivia API, self-hosted bank, or a cache in front of either).
type QuestionSource interface {
	Fetch(ctx context.Context, category int, difficulty domain.Difficulty, count int) ([]domain.SourceQuestion, error)
}

// RoundGenerator materializes one round's question set from a room's
// round plan. Rounds for different rooms can generate concurrently, so
// the shuffle source is mutex-guarded.
type RoundGenerator struct {
	source QuestionSource
	mu     sync.Mutex
	rnd    *rand.Rand
}

func NewRoundGenerator(source QuestionSource, rnd *rand.Rand) *RoundGenerator {
	return &RoundGenerator{source: source, rnd: rnd}
}

// NextCategory picks the category following current in the plan. A zero
// current means no round has started and the first planned category is
// next. With duplicate categories in the plan, the first matching index
// decides the successor. Returns ErrRoundPlanExhausted when current sits
// at the last position.
func NextCategory(current int, plan []int) (int, error) {
	if len(plan) == 0 {
		return 0, domain.ErrEmptyRoundPlan
	}
	if current == 0 {
		return plan[0], nil
	}
	for i, category := range plan {
		if category != current {
			continue
		}
		if i == len(plan)-1 {
			return 0, domain.ErrRoundPlanExhausted
		}
		return plan[i+1], nil
	}
	// Current category no longer in the plan; treat as exhausted rather
	// than restarting from the top.
	return 0, domain.ErrRoundPlanExhausted
}

// NextRound decides the next category and fetches its question set.
// Questions come back indexed 1..count in provider order; each question's
// answer set is the correct answer plus all incorrect ones under a uniform
// random permutation. Provider failures wrap ErrRoundGenerationFailed and
// leave no partial state behind.
func (g *RoundGenerator) NextRound(ctx context.Context, current int, plan []int, mode domain.Mode, count int) (int, map[int]domain.Question, error) {
	category, err := NextCategory(current, plan)
	if err != nil {
		return 0, nil, err
	}

	fetched, err := g.source.Fetch(ctx, category, domain.DifficultyFor(mode), count)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrRoundGenerationFailed, err)
	}

	questions := make(map[int]domain.Question, len(fetched))
	for i, q := range fetched {
		questions[i+1] = domain.Question{
			Prompt:        q.Prompt,
			CorrectAnswer: q.CorrectAnswer,
			AllAnswers:    g.shuffleAnswers(q),
		}
	}
	return category, questions, nil
}

func (g *RoundGenerator) shuffleAnswers(q domain.SourceQuestion) []string {
	answers := make([]string, 0, len(q.IncorrectAnswers)+1)
	answers = append(answers, q.CorrectAnswer)
	answers = append(answers, q.IncorrectAnswers...)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rnd.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	return answers
}
