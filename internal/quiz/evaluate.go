package quiz

import (
	"math"
	"strings"
)

// SentinelIncorrect is written into an AnswerMap entry when a
// free-text answer fails to match. It keeps "answered wrong"
// distinguishable from "never answered" (a missing key).
const SentinelIncorrect = "incorrect"

type ResultStatus string

const (
	StatusUnanswered ResultStatus = "unanswered"
	StatusCorrect    ResultStatus = "correct"
	StatusIncorrect  ResultStatus = "incorrect"
)

type QuestionResult struct {
	QuestionID string       `json:"question_id"`
	Status     ResultStatus `json:"status"`
}

type Evaluation struct {
	Results []QuestionResult `json:"results"`
	Correct int              `json:"correct"`
	Total   int              `json:"total"`
}

// Percent is the score as a whole-number percentage. An empty quiz
// scores 0, never a division by zero.
func (e Evaluation) Percent() int {
	if e.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(e.Correct) / float64(e.Total)))
}

// Evaluate grades answers against questions, returning an explicit
// per-question verdict. Choice questions compare answer IDs verbatim.
// Free-text questions compare after prefix-stripping and lowercasing,
// and the map entry is rewritten: to the correct Answer.ID on a match,
// to SentinelIncorrect on a mismatch. Missing entries stay missing and
// count as unanswered. Because verdicts are derived from IDs and the
// sentinel as well as raw text, re-running over an already evaluated
// map yields the same verdicts.
func Evaluate(questions []Question, answers AnswerMap) Evaluation {
	ev := Evaluation{Total: len(questions)}
	for _, q := range questions {
		res := QuestionResult{QuestionID: q.ID, Status: StatusUnanswered}
		given, ok := answers[q.ID]
		correct := q.CorrectAnswer()
		if ok && correct != nil {
			switch q.Type {
			case TypeFillBlank, TypeShortAnswer:
				res.Status = gradeFreeText(q.ID, given, correct, answers)
			default:
				if given == correct.ID {
					res.Status = StatusCorrect
				} else {
					res.Status = StatusIncorrect
				}
			}
		} else if ok {
			res.Status = StatusIncorrect
		}
		if res.Status == StatusCorrect {
			ev.Correct++
		}
		ev.Results = append(ev.Results, res)
	}
	return ev
}

func gradeFreeText(qid, given string, correct *Answer, answers AnswerMap) ResultStatus {
	if given == correct.ID {
		return StatusCorrect
	}
	if given == SentinelIncorrect {
		return StatusIncorrect
	}
	want := strings.ToLower(CleanOptionText(correct.Text))
	got := strings.ToLower(CleanOptionText(given))
	if got == want {
		answers[qid] = correct.ID
		return StatusCorrect
	}
	answers[qid] = SentinelIncorrect
	return StatusIncorrect
}
