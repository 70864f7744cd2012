package quiz

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RawQuestion is the loosely typed payload generation backends emit.
// Field names vary by backend version, so every field is optional and
// several are aliases (Question/Text, QuestionType/Type).
type RawQuestion struct {
	ID            string   `json:"id,omitempty"`
	Question      string   `json:"question,omitempty"`
	Text          string   `json:"text,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	CorrectLetter string   `json:"correct_letter,omitempty"`
	CleanAnswer   string   `json:"clean_answer,omitempty"`
	QuestionType  string   `json:"question_type,omitempty"`
	Type          string   `json:"type,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

func (r RawQuestion) text() string {
	if r.Question != "" {
		return r.Question
	}
	return r.Text
}

func (r RawQuestion) rawType() string {
	if r.QuestionType != "" {
		return r.QuestionType
	}
	return r.Type
}

// letterPrefixRe detects an explicit option label at the start of a
// correct-answer string: a single letter a-d followed by '.', ')' or
// whitespace.
var letterPrefixRe = regexp.MustCompile(`^([a-dA-D])[.)\s]`)

// cleanPrefixRe is the strip pattern applied before textual
// comparison: one leading letter, optional '.' or ')', optional
// whitespace. It is applied to both sides of every comparison, so
// stripping the first letter of an unlabeled answer is harmless.
var cleanPrefixRe = regexp.MustCompile(`(?i)^[a-z][.)]?\s*`)

// CleanOptionText strips a leading single-letter option label and
// trims the remainder. Used for option/answer comparison during
// normalization and again when grading free-text responses.
func CleanOptionText(s string) string {
	return strings.TrimSpace(cleanPrefixRe.ReplaceAllString(s, ""))
}

func resolveType(raw string) QuestionType {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	switch QuestionType(t) {
	case TypeMultipleChoice, TypeTrueFalse, TypeFillBlank, TypeShortAnswer, typeMatching, typeMixed:
		return QuestionType(t)
	default:
		return TypeMultipleChoice
	}
}

// isTrueFalse applies the true/false override: a record is treated as
// true/false when its declared type says so, when its options are
// exactly {True, False}, or when its correct answer is one of the two
// literals. The override outranks the declared type.
func isTrueFalse(raw RawQuestion, resolved QuestionType) bool {
	if resolved == TypeTrueFalse {
		return true
	}
	if len(raw.Options) == 2 {
		set := map[string]bool{raw.Options[0]: true, raw.Options[1]: true}
		if set["True"] && set["False"] {
			return true
		}
	}
	return raw.CorrectAnswer == "True" || raw.CorrectAnswer == "False"
}

// correctIndex resolves which option is correct for a multiple-choice
// record: explicit letter field, then letter prefix on the correct
// answer, then cleaned-text match, then index 0.
func correctIndex(raw RawQuestion) int {
	if l := strings.TrimSpace(raw.CorrectLetter); l != "" {
		if idx := letterToIndex(rune(l[0])); idx >= 0 && idx < len(raw.Options) {
			return idx
		}
	}
	if m := letterPrefixRe.FindStringSubmatch(raw.CorrectAnswer); m != nil {
		if idx := letterToIndex(rune(m[1][0])); idx >= 0 && idx < len(raw.Options) {
			return idx
		}
	}
	want := raw.CleanAnswer
	if want == "" {
		want = raw.CorrectAnswer
	}
	want = strings.ToLower(CleanOptionText(want))
	if want != "" {
		for i, opt := range raw.Options {
			if strings.ToLower(CleanOptionText(opt)) == want {
				return i
			}
		}
	}
	return 0
}

func letterToIndex(r rune) int {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r - 'a')
	case r >= 'A' && r <= 'Z':
		return int(r - 'A')
	default:
		return -1
	}
}

var placeholderOptions = []string{"Option A", "Option B", "Option C", "Option D"}

// Normalize converts raw generator output into canonical questions.
// It never fails: every decision point has an index-based fallback, so
// malformed records degrade to placeholder answers instead of
// erroring. Records that resolve to matching or mixed are dropped;
// the relative order of everything else is preserved.
func Normalize(raws []RawQuestion) []Question {
	out := make([]Question, 0, len(raws))
	for i, raw := range raws {
		q := normalizeOne(i, raw)
		if q.Type == typeMatching || q.Type == typeMixed {
			continue
		}
		out = append(out, q)
	}
	return out
}

func normalizeOne(i int, raw RawQuestion) Question {
	typ := resolveType(raw.rawType())
	if isTrueFalse(raw, typ) {
		typ = TypeTrueFalse
	}

	q := Question{
		ID:          raw.ID,
		Text:        raw.text(),
		Type:        typ,
		Explanation: raw.Explanation,
	}
	if q.ID == "" {
		q.ID = strconv.Itoa(i + 1)
	}

	switch typ {
	case TypeTrueFalse:
		// Exact literal match on purpose: a key that is neither
		// literal yields two wrong answers, which Validate and the
		// taking view surface instead of guessing.
		q.Answers = []Answer{
			{ID: fmt.Sprintf("%d-true", i), Text: "True", IsCorrect: raw.CorrectAnswer == "True"},
			{ID: fmt.Sprintf("%d-false", i), Text: "False", IsCorrect: raw.CorrectAnswer == "False"},
		}
	case TypeFillBlank, TypeShortAnswer:
		text := raw.CorrectAnswer
		if text == "" {
			text = raw.CleanAnswer
		}
		q.Answers = []Answer{{ID: fmt.Sprintf("%d-0", i), Text: text, IsCorrect: true}}
	default:
		q.Answers = choiceAnswers(i, raw)
	}
	return q
}

func choiceAnswers(i int, raw RawQuestion) []Answer {
	if len(raw.Options) == 0 {
		if raw.CorrectAnswer != "" {
			return []Answer{{ID: fmt.Sprintf("%d-0", i), Text: raw.CorrectAnswer, IsCorrect: true}}
		}
		// No answer signal at all: synthesize lettered placeholders
		// rather than leaving the question unanswerable.
		answers := make([]Answer, len(placeholderOptions))
		for j, opt := range placeholderOptions {
			answers[j] = Answer{ID: fmt.Sprintf("%d-%d", i, j), Text: opt, IsCorrect: j == 0}
		}
		return answers
	}
	correct := correctIndex(raw)
	answers := make([]Answer, len(raw.Options))
	for j, opt := range raw.Options {
		answers[j] = Answer{ID: fmt.Sprintf("%d-%d", i, j), Text: opt, IsCorrect: j == correct}
	}
	return answers
}
