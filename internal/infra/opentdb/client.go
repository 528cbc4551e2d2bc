// Package opentdb adapts the Open Trivia Database HTTP API to the
// question source contract.
package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ukkpower/Netflix-Trivia/internal/domain"
)

const DefaultBaseURL = "https://opentdb.com"

// Provider response codes, per the API documentation.
const (
	codeSuccess       = 0
	codeNoResults     = 1
	codeInvalidParam  = 2
	codeTokenNotFound = 3
	codeTokenEmpty    = 4
	codeRateLimited   = 5
)

// Client fetches multiple-choice questions from an Open Trivia DB
// compatible endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	ResponseCode int         `json:"response_code"`
	Results      []apiResult `json:"results"`
}

type apiResult struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Fetch requests count questions of the given category and difficulty,
// restricted to single-correct multiple choice. Prompts and answers come
// back HTML-encoded from the provider and are unescaped here.
func (c *Client) Fetch(ctx context.Context, category int, difficulty domain.Difficulty, count int) ([]domain.SourceQuestion, error) {
	q := url.Values{}
	q.Set("amount", strconv.Itoa(count))
	q.Set("category", strconv.Itoa(category))
	q.Set("difficulty", string(difficulty))
	q.Set("type", "multiple")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api.php?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch questions: unexpected status %d", resp.StatusCode)
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if decoded.ResponseCode != codeSuccess {
		return nil, fmt.Errorf("fetch questions: %s", responseCodeMessage(decoded.ResponseCode))
	}

	questions := make([]domain.SourceQuestion, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		incorrect := make([]string, 0, len(r.IncorrectAnswers))
		for _, a := range r.IncorrectAnswers {
			incorrect = append(incorrect, html.UnescapeString(a))
		}
		questions = append(questions, domain.SourceQuestion{
			Prompt:           html.UnescapeString(r.Question),
			CorrectAnswer:    html.UnescapeString(r.CorrectAnswer),
			IncorrectAnswers: incorrect,
		})
	}
	return questions, nil
}

func responseCodeMessage(code int) string {
	switch code {
	case codeNoResults:
		return "not enough questions for the requested category and difficulty"
	case codeInvalidParam:
		return "invalid request parameter"
	case codeTokenNotFound, codeTokenEmpty:
		return "session token error"
	case codeRateLimited:
		return "rate limited by provider"
	default:
		return "provider error code " + strconv.Itoa(code)
	}
}
