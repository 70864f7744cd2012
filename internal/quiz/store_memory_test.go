package quiz

import (
	"context"
	"testing"
	"time"
)

func sampleQuiz(id string) Quiz {
	return Quiz{
		ID:    id,
		Title: "Biology basics",
		Questions: []Question{
			mcQuestion("1", "1-0"),
			fillQuestion("2", "2-0", "osmosis"),
		},
		CreatedAt: time.Now(),
	}
}

func TestMemoryStoreQuizCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	if _, err := s.SaveQuiz(ctx, sampleQuiz("q1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.GetQuiz(ctx, "q1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Biology basics" || len(got.Questions) != 2 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}

	list, err := s.ListQuizzes(ctx, ListOpts{})
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v (%d items)", err, len(list))
	}

	if err := s.DeleteQuiz(ctx, "q1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetQuiz(ctx, "q1"); err != ErrQuizNotFound {
		t.Fatalf("want ErrQuizNotFound, got %v", err)
	}
}

func TestMemoryStoreSaveGeneratesID(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	q := sampleQuiz("")
	saved, err := s.SaveQuiz(ctx, q)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("save must return the generated id")
	}
	if _, err := s.GetQuiz(ctx, saved.ID); err != nil {
		t.Fatalf("get by returned id: %v", err)
	}
}

func TestMemoryStoreAttemptFlow(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	if _, err := s.SaveQuiz(ctx, sampleQuiz("q1")); err != nil {
		t.Fatalf("save: %v", err)
	}

	a, err := s.NewAttempt(ctx, "q1", "alex")
	if err != nil {
		t.Fatalf("new attempt: %v", err)
	}
	if a.Status != "in_progress" {
		t.Fatalf("status=%q", a.Status)
	}

	if _, err := s.SaveAnswers(ctx, a.ID, AnswerMap{"1": "1-0", "2": "osmosis"}); err != nil {
		t.Fatalf("save answers: %v", err)
	}

	done, err := s.Submit(ctx, a.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if done.ScorePercent != 100 {
		t.Fatalf("score=%d, want 100", done.ScorePercent)
	}
	if done.Answers["2"] != "2-0" {
		t.Fatalf("free-text answer not rewritten: %q", done.Answers["2"])
	}

	// Submitting twice is a no-op, and saving after submit fails.
	again, err := s.Submit(ctx, a.ID)
	if err != nil || again.ScorePercent != 100 {
		t.Fatalf("resubmit: %v score=%d", err, again.ScorePercent)
	}
	if _, err := s.SaveAnswers(ctx, a.ID, AnswerMap{"1": "1-0-x"}); err != ErrAlreadyGraded {
		t.Fatalf("want ErrAlreadyGraded, got %v", err)
	}
}

func TestMemoryStoreAttemptMissingQuiz(t *testing.T) {
	s := NewInMemoryStore()
	if _, err := s.NewAttempt(context.Background(), "nope", "alex"); err != ErrQuizNotFound {
		t.Fatalf("want ErrQuizNotFound, got %v", err)
	}
}
