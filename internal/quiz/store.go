package quiz

import (
	"context"
	"errors"
)

var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrAttemptNotFound = errors.New("attempt not found")
	ErrAlreadyGraded   = errors.New("attempt already submitted")
)

type ListOpts struct {
	Q      string // substring filter on title
	Limit  int
	Offset int
}

// Store is the persistence capability handed to callers; backends are
// swappable (in-memory for tests, SQL for the daemon).
type Store interface {
	// SaveQuiz persists q and returns the stored copy; an empty ID or
	// zero CreatedAt is filled in, so callers must use the returned
	// Quiz to reference what they saved.
	SaveQuiz(ctx context.Context, q Quiz) (Quiz, error)
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	ListQuizzes(ctx context.Context, opts ListOpts) ([]Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error

	NewAttempt(ctx context.Context, quizID, userID string) (Attempt, error)
	SaveAnswers(ctx context.Context, attemptID string, answers AnswerMap) (Attempt, error)
	Submit(ctx context.Context, attemptID string) (Attempt, error)
	GetAttempt(ctx context.Context, id string) (Attempt, error)
}
