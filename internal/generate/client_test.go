package generate

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
)

func newTestClient(endpoint string) *Client {
	return NewClient(endpoint, 2*time.Second, NewDemo(rand.New(rand.NewSource(7))))
}

var testReq = Request{
	Text:         "cells divide through mitosis producing identical daughter cells",
	NumQuestions: 3,
	NumOptions:   4,
	QuestionType: "multiple-choice",
	Difficulty:   "easy",
}

func TestClientRemoteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"questions": []quiz.RawQuestion{
				{Question: "Q1", QuestionType: "true_false", CorrectAnswer: "True"},
			},
		})
	}))
	defer srv.Close()

	got, source := newTestClient(srv.URL).Generate(context.Background(), testReq)
	if source != SourceRemote {
		t.Fatalf("source=%q, want remote", source)
	}
	if len(got) != 1 || got[0].Question != "Q1" {
		t.Fatalf("unexpected questions: %+v", got)
	}
}

func TestClientDeprecatedMessageFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "endpoint retired"})
	}))
	defer srv.Close()

	got, source := newTestClient(srv.URL).Generate(context.Background(), testReq)
	if source != SourceDemo {
		t.Fatalf("source=%q, want demo", source)
	}
	if len(got) != testReq.NumQuestions {
		t.Fatalf("demo produced %d questions, want %d", len(got), testReq.NumQuestions)
	}
}

func TestClientErrorStatusFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, source := newTestClient(srv.URL).Generate(context.Background(), testReq); source != SourceDemo {
		t.Fatalf("source=%q, want demo", source)
	}
}

func TestClientNetworkErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	if _, source := newTestClient(srv.URL).Generate(context.Background(), testReq); source != SourceDemo {
		t.Fatalf("source=%q, want demo", source)
	}
}

func TestClientNoEndpointUsesDemo(t *testing.T) {
	got, source := newTestClient("").Generate(context.Background(), testReq)
	if source != SourceDemo || len(got) != testReq.NumQuestions {
		t.Fatalf("source=%q len=%d", source, len(got))
	}
}
