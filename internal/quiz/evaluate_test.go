package quiz

import "testing"

func mcQuestion(id, correctID string) Question {
	return Question{
		ID:   id,
		Type: TypeMultipleChoice,
		Answers: []Answer{
			{ID: correctID, Text: "right", IsCorrect: true},
			{ID: correctID + "-x", Text: "wrong"},
		},
	}
}

func fillQuestion(id, answerID, text string) Question {
	return Question{
		ID:      id,
		Type:    TypeFillBlank,
		Answers: []Answer{{ID: answerID, Text: text, IsCorrect: true}},
	}
}

func TestEvaluateChoiceByID(t *testing.T) {
	qs := []Question{mcQuestion("1", "1-0"), mcQuestion("2", "2-0")}
	answers := AnswerMap{"1": "1-0", "2": "2-0-x"}
	ev := Evaluate(qs, answers)
	if ev.Correct != 1 || ev.Total != 2 {
		t.Fatalf("correct=%d total=%d, want 1/2", ev.Correct, ev.Total)
	}
	if ev.Results[0].Status != StatusCorrect || ev.Results[1].Status != StatusIncorrect {
		t.Fatalf("statuses %v", ev.Results)
	}
}

func TestEvaluateFreeTextRewrite(t *testing.T) {
	qs := []Question{
		fillQuestion("1", "1-0", "Mitochondria"),
		fillQuestion("2", "2-0", "Mitochondria"),
		fillQuestion("3", "3-0", "Mitochondria"),
	}
	answers := AnswerMap{
		"1": "mitochondria",
		"2": "chloroplast",
		// "3" never answered
	}
	ev := Evaluate(qs, answers)

	if answers["1"] != "1-0" {
		t.Fatalf("matched text should rewrite to answer id, got %q", answers["1"])
	}
	if answers["2"] != SentinelIncorrect {
		t.Fatalf("mismatched text should rewrite to sentinel, got %q", answers["2"])
	}
	if _, ok := answers["3"]; ok {
		t.Fatal("unanswered entry must stay absent")
	}
	if ev.Results[2].Status != StatusUnanswered {
		t.Fatalf("status=%q, want unanswered", ev.Results[2].Status)
	}
}

func TestEvaluateFreeTextPrefixStripping(t *testing.T) {
	qs := []Question{fillQuestion("1", "1-0", "Paris")}
	answers := AnswerMap{"1": "PARIS"}
	ev := Evaluate(qs, answers)
	if ev.Correct != 1 {
		t.Fatalf("case-insensitive match failed: %v", ev.Results)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	qs := []Question{
		fillQuestion("1", "1-0", "osmosis"),
		fillQuestion("2", "2-0", "osmosis"),
	}
	answers := AnswerMap{"1": "osmosis", "2": "diffusion"}
	first := Evaluate(qs, answers)
	second := Evaluate(qs, answers)
	if first.Correct != second.Correct {
		t.Fatalf("re-evaluation changed score: %d then %d", first.Correct, second.Correct)
	}
	for i := range first.Results {
		if first.Results[i].Status != second.Results[i].Status {
			t.Fatalf("verdict %d drifted: %q then %q", i, first.Results[i].Status, second.Results[i].Status)
		}
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		correct, total, want int
	}{
		{0, 0, 0}, // empty quiz never divides by zero
		{1, 2, 50},
		{2, 3, 67},
		{1, 3, 33},
		{3, 3, 100},
	}
	for _, c := range cases {
		ev := Evaluation{Correct: c.correct, Total: c.total}
		if got := ev.Percent(); got != c.want {
			t.Fatalf("Percent(%d/%d)=%d, want %d", c.correct, c.total, got, c.want)
		}
	}
}
