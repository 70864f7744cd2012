package quiz

import (
	"fmt"
	"time"
)

// QuestionType is the closed set of question kinds the rest of the
// system understands. Upstream generators emit more (matching, mixed);
// those never survive normalization.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeTrueFalse      QuestionType = "true-false"
	TypeFillBlank      QuestionType = "fill-in-the-blank"
	TypeShortAnswer    QuestionType = "short-answer"

	// Upstream-only types. Recognized so the normalizer can filter
	// them, never produced as canonical output.
	typeMatching QuestionType = "matching"
	typeMixed    QuestionType = "mixed"
)

type Answer struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type Question struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Type        QuestionType `json:"type"`
	Answers     []Answer     `json:"answers"`
	Explanation string       `json:"explanation,omitempty"`
}

// CorrectAnswer returns the first answer marked correct, or nil.
// True/false records whose upstream key matched neither literal have
// no correct answer at all; callers must handle nil.
func (q Question) CorrectAnswer() *Answer {
	for i := range q.Answers {
		if q.Answers[i].IsCorrect {
			return &q.Answers[i]
		}
	}
	return nil
}

// Validate reports structural problems a taker-facing view must show
// inline rather than paper over. Today that is only the malformed
// true/false shape: anything other than exactly {"True","False"}.
func (q Question) Validate() error {
	if q.Type != TypeTrueFalse {
		return nil
	}
	if len(q.Answers) != 2 {
		return fmt.Errorf("question %s: true/false must have exactly 2 answers, got %d", q.ID, len(q.Answers))
	}
	var hasTrue, hasFalse bool
	for _, a := range q.Answers {
		switch a.Text {
		case "True":
			hasTrue = true
		case "False":
			hasFalse = true
		}
	}
	if !hasTrue || !hasFalse {
		return fmt.Errorf("question %s: true/false options must be True and False", q.ID)
	}
	return nil
}

type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
}

// AnswerMap records what the user gave per question ID: a selected
// Answer.ID for choice questions, raw free text for fill/short
// questions. A missing key means the question was never answered.
// After evaluation, free-text entries are rewritten to the correct
// Answer.ID (match) or SentinelIncorrect (mismatch).
type AnswerMap map[string]string

type Attempt struct {
	ID           string    `json:"id"`
	QuizID       string    `json:"quiz_id"`
	UserID       string    `json:"user_id"`
	Status       string    `json:"status"` // in_progress|submitted
	ScorePercent int       `json:"score_percent"`
	Answers      AnswerMap `json:"answers"`
	StartedAt    time.Time `json:"started_at"`
}
