package memory

import (
	"context"
	"testing"
	"time"

	"github.com/ukkpower/Netflix-Trivia/internal/domain"
)

func TestQuestionCacheCaches(t *testing.T) {
	source := &countingSource{}
	cache := NewQuestionCache(source, time.Minute)

	if _, err := cache.Fetch(context.Background(), 9, domain.DifficultyEasy, 5); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected source once, got %d", source.calls)
	}

	if _, err := cache.Fetch(context.Background(), 9, domain.DifficultyEasy, 5); err != nil {
		t.Fatalf("fetch 2: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected cache hit, source calls %d", source.calls)
	}

	// Different difficulty is a different key.
	if _, err := cache.Fetch(context.Background(), 9, domain.DifficultyHard, 5); err != nil {
		t.Fatalf("fetch 3: %v", err)
	}
	if source.calls != 2 {
		t.Fatalf("expected second source call for new key, got %d", source.calls)
	}
}

type countingSource struct {
	calls int
}

func (s *countingSource) Fetch(_ context.Context, _ int, _ domain.Difficulty, _ int) ([]domain.SourceQuestion, error) {
	s.calls++
	return []domain.SourceQuestion{
		{Prompt: "What is 2 + 2?", CorrectAnswer: "4", IncorrectAnswers: []string{"3", "5"}},
	}, nil
}
