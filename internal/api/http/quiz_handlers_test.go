package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/quiz"
)

func testRouter(store quiz.Store) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/quizzes", SaveQuizHandler(store))
	r.Get("/quizzes", ListQuizzesHandler(store))
	r.Get("/quizzes/{quizID}", GetQuizHandler(store))
	r.Delete("/quizzes/{quizID}", DeleteQuizHandler(store))
	r.Post("/attempts", CreateAttemptHandler(store))
	r.Post("/attempts/{attemptID}/answers", SaveAnswersHandler(store))
	r.Post("/attempts/{attemptID}/submit", SubmitAttemptHandler(store))
	return r
}

func seedQuiz(t *testing.T, store quiz.Store) quiz.Quiz {
	t.Helper()
	q := quiz.Quiz{
		ID:    "q1",
		Title: "Sample",
		Questions: quiz.Normalize([]quiz.RawQuestion{
			{QuestionType: "multiple-choice", Question: "Pick one", Options: []string{"right", "wrong"}, CorrectAnswer: "right"},
			{QuestionType: "true_false", Question: "It works.", CorrectAnswer: "True"},
		}),
	}
	if _, err := store.SaveQuiz(context.Background(), q); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return q
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(buf)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestQuizCRUDOverHTTP(t *testing.T) {
	store := quiz.NewInMemoryStore()
	r := testRouter(store)

	rec := doJSON(t, r, "POST", "/quizzes", map[string]any{
		"title": "HTTP quiz",
		"questions": []map[string]any{
			{"id": "1", "text": "x", "type": "short-answer",
				"answers": []map[string]any{{"id": "1-0", "text": "y", "is_correct": true}}},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status=%d body=%s", rec.Code, rec.Body)
	}
	var saved quiz.Quiz
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The response must carry the generated id: it is the client's
	// only handle for fetching, attempting, deleting or exporting the
	// quiz it just created.
	if saved.ID == "" {
		t.Fatalf("created quiz response has empty id: %s", rec.Body)
	}

	rec = doJSON(t, r, "GET", "/quizzes/"+saved.ID, nil)
	if rec.Code != 200 {
		t.Fatalf("get by returned id status=%d body=%s", rec.Code, rec.Body)
	}

	rec = doJSON(t, r, "GET", "/quizzes", nil)
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), "HTTP quiz") {
		t.Fatalf("list status=%d body=%s", rec.Code, rec.Body)
	}
}

func TestSaveQuizRejectsEmpty(t *testing.T) {
	r := testRouter(quiz.NewInMemoryStore())
	if rec := doJSON(t, r, "POST", "/quizzes", map[string]any{"title": ""}); rec.Code != 400 {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
	if rec := doJSON(t, r, "POST", "/quizzes", map[string]any{"title": "t"}); rec.Code != 400 {
		t.Fatalf("no questions: status=%d, want 400", rec.Code)
	}
}

func TestGetQuizNotFound(t *testing.T) {
	r := testRouter(quiz.NewInMemoryStore())
	if rec := doJSON(t, r, "GET", "/quizzes/nope", nil); rec.Code != 404 {
		t.Fatalf("status=%d, want 404", rec.Code)
	}
}

func TestAttemptFlowOverHTTP(t *testing.T) {
	store := quiz.NewInMemoryStore()
	q := seedQuiz(t, store)
	r := testRouter(store)

	rec := doJSON(t, r, "POST", "/attempts", map[string]string{"quiz_id": q.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create attempt status=%d body=%s", rec.Code, rec.Body)
	}
	var created attemptResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(created.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", created.Warnings)
	}

	answers := quiz.AnswerMap{}
	for i, question := range q.Questions {
		if a := question.CorrectAnswer(); a != nil && i == 0 {
			answers[question.ID] = a.ID
		}
	}
	rec = doJSON(t, r, "POST", "/attempts/"+created.ID+"/answers", answers)
	if rec.Code != 200 {
		t.Fatalf("save answers status=%d body=%s", rec.Code, rec.Body)
	}

	rec = doJSON(t, r, "POST", "/attempts/"+created.ID+"/submit", nil)
	if rec.Code != 200 {
		t.Fatalf("submit status=%d body=%s", rec.Code, rec.Body)
	}
	var done quiz.Attempt
	if err := json.Unmarshal(rec.Body.Bytes(), &done); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if done.ScorePercent != 50 {
		t.Fatalf("score=%d, want 50", done.ScorePercent)
	}
}

func TestCreateAttemptWarnsOnMalformedTrueFalse(t *testing.T) {
	store := quiz.NewInMemoryStore()
	q := quiz.Quiz{
		ID:    "bad",
		Title: "Broken",
		Questions: []quiz.Question{{
			ID:      "1",
			Type:    quiz.TypeTrueFalse,
			Text:    "half a question",
			Answers: []quiz.Answer{{ID: "1-true", Text: "True", IsCorrect: true}},
		}},
	}
	if _, err := store.SaveQuiz(context.Background(), q); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rec := doJSON(t, testRouter(store), "POST", "/attempts", map[string]string{"quiz_id": "bad"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d", rec.Code)
	}
	var resp attemptResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Warnings) != 1 {
		t.Fatalf("warnings=%v, want one malformed true/false warning", resp.Warnings)
	}
}
