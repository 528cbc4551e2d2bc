package opentdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ukkpower/Netflix-Trivia/internal/domain"
)

func TestFetchParsesAndUnescapes(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"amount":     r.URL.Query().Get("amount"),
			"category":   r.URL.Query().Get("category"),
			"difficulty": r.URL.Query().Get("difficulty"),
			"type":       r.URL.Query().Get("type"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"response_code": 0,
			"results": [
				{
					"question": "Who wrote &quot;Hamlet&quot;?",
					"correct_answer": "William Shakespeare",
					"incorrect_answers": ["Charles Dickens", "Oscar Wilde", "Tom &amp; Jerry"]
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	questions, err := client.Fetch(context.Background(), 10, domain.DifficultyMedium, 1)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotQuery["amount"] != "1" || gotQuery["category"] != "10" || gotQuery["difficulty"] != "medium" || gotQuery["type"] != "multiple" {
		t.Fatalf("unexpected query params: %v", gotQuery)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.Prompt != `Who wrote "Hamlet"?` {
		t.Fatalf("expected unescaped prompt, got %q", q.Prompt)
	}
	if q.IncorrectAnswers[2] != "Tom & Jerry" {
		t.Fatalf("expected unescaped answer, got %q", q.IncorrectAnswers[2])
	}
}

func TestFetchProviderErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response_code": 1, "results": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	if _, err := client.Fetch(context.Background(), 9, domain.DifficultyEasy, 50); err == nil {
		t.Fatalf("expected error for non-zero response code")
	}
}

func TestFetchHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	if _, err := client.Fetch(context.Background(), 9, domain.DifficultyEasy, 5); err == nil {
		t.Fatalf("expected error for HTTP 500")
	}
}

func TestFetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately, so the dial fails

	client := NewClient(server.URL, time.Second)
	if _, err := client.Fetch(context.Background(), 9, domain.DifficultyEasy, 5); err == nil {
		t.Fatalf("expected transport error against closed server")
	}
}
