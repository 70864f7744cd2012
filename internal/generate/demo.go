package generate

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/quizforge/quizforge/internal/quiz"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// TypeMix selects which question kinds the generator emits.
type TypeMix string

const (
	MixMultipleChoice TypeMix = "multiple-choice"
	MixTrueFalse      TypeMix = "true-false"
	MixMixed          TypeMix = "mixed"
)

type DemoOptions struct {
	Count         int
	AnswerOptions int // options per multiple-choice question
	Types         TypeMix
	Difficulty    Difficulty
}

// fallbackTopics guarantees the generator never stalls on short or
// unusable source text.
var fallbackTopics = []string{
	"technology", "software", "networks", "databases",
	"algorithms", "security", "computing", "automation",
}

// Demo synthesizes raw question records from word-frequency style
// topic extraction over the source text. It is the local substitute
// for the remote generation backend, so it emits the same loosely
// typed RawQuestion shape and its output goes through the normalizer
// like any other backend response. The rand source is injected so
// tests can pin outcomes.
type Demo struct {
	rng *rand.Rand
}

func NewDemo(rng *rand.Rand) *Demo {
	return &Demo{rng: rng}
}

// Generate produces opts.Count raw records. Count <= 0 yields an
// empty slice.
func (d *Demo) Generate(text string, opts DemoOptions) []quiz.RawQuestion {
	if opts.Count <= 0 {
		return []quiz.RawQuestion{}
	}
	if opts.AnswerOptions < 2 {
		opts.AnswerOptions = 4
	}
	topics := d.extractTopics(text, opts.Count)

	out := make([]quiz.RawQuestion, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		topic := topics[i%len(topics)]
		typ := opts.Types
		if typ == MixMixed {
			if d.rng.Intn(2) == 0 {
				typ = MixMultipleChoice
			} else {
				typ = MixTrueFalse
			}
		}
		switch typ {
		case MixTrueFalse:
			out = append(out, d.trueFalse(topic))
		default:
			out = append(out, d.multipleChoice(topic, opts))
		}
	}
	return out
}

// extractTopics splits on whitespace, keeps words longer than 4
// characters, dedupes in first-seen order, caps candidates at count*2
// with roughly 70% random retention, and strips non-alphabetic runes.
// An empty result falls back to the generic topic list so the caller
// always has material.
func (d *Demo) extractTopics(text string, count int) []string {
	seen := map[string]bool{}
	topics := make([]string, 0, count*2)
	for _, w := range strings.Fields(text) {
		if len(topics) >= count*2 {
			break
		}
		if len(w) <= 4 {
			continue
		}
		lw := strings.ToLower(w)
		if seen[lw] {
			continue
		}
		seen[lw] = true
		if d.rng.Float64() >= 0.7 {
			continue
		}
		cleaned := stripNonAlpha(w)
		if len(cleaned) < 4 {
			continue
		}
		topics = append(topics, cleaned)
	}
	if len(topics) == 0 {
		return fallbackTopics
	}
	return topics
}

func stripNonAlpha(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (d *Demo) questionText(topic string, diff Difficulty) string {
	switch diff {
	case DifficultyHard:
		return fmt.Sprintf("In which context is the concept of %q most significant?", topic)
	case DifficultyMedium:
		return fmt.Sprintf("Which of the following best describes %q?", topic)
	default:
		return fmt.Sprintf("What is %q?", topic)
	}
}

func (d *Demo) multipleChoice(topic string, opts DemoOptions) quiz.RawQuestion {
	correct := fmt.Sprintf("The definition of %s as covered in the notes", topic)
	options := make([]string, 0, opts.AnswerOptions)
	options = append(options, correct)
	for j := 1; j < opts.AnswerOptions; j++ {
		options = append(options, fmt.Sprintf("A common misconception about %s (#%d)", topic, j))
	}
	d.rng.Shuffle(len(options), func(a, b int) {
		options[a], options[b] = options[b], options[a]
	})
	return quiz.RawQuestion{
		QuestionType:  "multiple_choice",
		Question:      d.questionText(topic, opts.Difficulty),
		Options:       options,
		CorrectAnswer: correct,
		Explanation:   fmt.Sprintf("%q appears in the source notes; the other options are generated distractors.", topic),
	}
}

func (d *Demo) trueFalse(topic string) quiz.RawQuestion {
	answer := "True"
	if d.rng.Intn(2) == 0 {
		answer = "False"
	}
	return quiz.RawQuestion{
		QuestionType:  "true_false",
		Question:      fmt.Sprintf("The notes discuss %q as a central concept.", topic),
		Options:       []string{"True", "False"},
		CorrectAnswer: answer,
		Explanation:   "Statement generated from extracted topics.",
	}
}
