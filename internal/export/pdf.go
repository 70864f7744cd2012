package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/quizforge/quizforge/internal/quiz"
)

var columns = []struct {
	title string
	width float64
}{
	{"#", 10},
	{"Question", 95},
	{"Your Answer", 55},
	{"Correct Answer", 55},
	{"Explanation", 62},
}

// QuizPDF renders a quiz as a tabular PDF. When answers is nil the
// "Your Answer" column reads "N/A" (plain quiz export); with a map it
// shows the resolved answer text (results export).
func QuizPDF(q quiz.Quiz, answers quiz.AnswerMap) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(q.Title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, q.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range columns {
		pdf.CellFormat(c.width, 8, c.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, question := range q.Questions {
		row := []string{
			fmt.Sprintf("%d", i+1),
			question.Text,
			userAnswerText(question, answers),
			correctAnswerText(question),
			question.Explanation,
		}
		drawRow(pdf, row)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawRow renders one table row, sizing the row to its tallest cell.
func drawRow(pdf *fpdf.Fpdf, cells []string) {
	const lineHeight = 5.0
	lines := 1
	for i, text := range cells {
		n := len(pdf.SplitText(text, columns[i].width-2))
		if n > lines {
			lines = n
		}
	}
	height := float64(lines) * lineHeight

	if pdf.GetY()+height > 190 {
		pdf.AddPage()
	}
	startX, y := pdf.GetXY()
	x := startX
	for i, text := range cells {
		w := columns[i].width
		pdf.Rect(x, y, w, height, "D")
		pdf.SetXY(x+1, y)
		pdf.MultiCell(w-2, lineHeight, text, "", "L", false)
		x += w
	}
	pdf.SetXY(startX, y+height)
}

func correctAnswerText(q quiz.Question) string {
	if a := q.CorrectAnswer(); a != nil {
		return a.Text
	}
	return ""
}

func userAnswerText(q quiz.Question, answers quiz.AnswerMap) string {
	if answers == nil {
		return "N/A"
	}
	given, ok := answers[q.ID]
	if !ok {
		return "No answer selected"
	}
	if given == quiz.SentinelIncorrect {
		return "Incorrect"
	}
	for _, a := range q.Answers {
		if a.ID == given {
			return a.Text
		}
	}
	// free-text that was never evaluated
	return given
}
