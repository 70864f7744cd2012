package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
)

// Source tells callers where a batch of questions came from, so the
// UI can show that the backend was unavailable.
type Source string

const (
	SourceRemote Source = "remote"
	SourceDemo   Source = "demo"
)

// Request mirrors the generation backend's wire contract.
type Request struct {
	Text         string `json:"text"`
	NumQuestions int    `json:"num_questions"`
	NumOptions   int    `json:"num_options"`
	QuestionType string `json:"question_type"` // multiple-choice|true-false|mixed
	Difficulty   string `json:"difficulty"`    // easy|medium|hard
}

type response struct {
	Questions []quiz.RawQuestion `json:"questions"`
	Message   string             `json:"message"` // set when the endpoint is deprecated
}

// Client calls the remote generation backend and downgrades to the
// demo generator on any failure: network error, non-2xx, malformed
// body, or a deprecation message. Callers never see a hard error.
type Client struct {
	endpoint string
	hc       *http.Client
	demo     *Demo
}

func NewClient(endpoint string, timeout time.Duration, demo *Demo) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		hc:       &http.Client{Timeout: timeout},
		demo:     demo,
	}
}

// Generate returns raw question records and where they came from.
// A single awaited remote call, no retries, no partial results.
func (c *Client) Generate(ctx context.Context, req Request) ([]quiz.RawQuestion, Source) {
	if c.endpoint == "" {
		return c.fallback(req), SourceDemo
	}
	raws, err := c.callRemote(ctx, req)
	if err != nil {
		log.Printf("generation backend unavailable, using demo questions: %v", err)
		return c.fallback(req), SourceDemo
	}
	return raws, SourceRemote
}

func (c *Client) callRemote(ctx context.Context, req Request) ([]quiz.RawQuestion, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	hreq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(hreq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errStatus(resp.StatusCode)
	}
	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Message != "" {
		return nil, errDeprecated(out.Message)
	}
	if len(out.Questions) == 0 {
		return nil, errEmpty{}
	}
	return out.Questions, nil
}

func (c *Client) fallback(req Request) []quiz.RawQuestion {
	return c.demo.Generate(req.Text, DemoOptions{
		Count:         req.NumQuestions,
		AnswerOptions: req.NumOptions,
		Types:         TypeMix(req.QuestionType),
		Difficulty:    Difficulty(req.Difficulty),
	})
}

type errStatus int

func (e errStatus) Error() string { return fmt.Sprintf("unexpected status %d", int(e)) }

type errDeprecated string

func (e errDeprecated) Error() string { return "endpoint deprecated: " + string(e) }

type errEmpty struct{}

func (errEmpty) Error() string { return "backend returned no questions" }
