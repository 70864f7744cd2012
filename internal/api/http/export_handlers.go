package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/export"
	"github.com/quizforge/quizforge/internal/quiz"
)

// ExportPDFHandler streams a quiz as PDF. With ?attempt=<id> it
// renders the taker's answers alongside the key; without it the
// "Your Answer" column reads N/A.
func ExportPDFHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.GetQuiz(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			http.Error(w, err.Error(), storeStatus(err))
			return
		}
		var answers quiz.AnswerMap
		if attemptID := r.URL.Query().Get("attempt"); attemptID != "" {
			a, err := store.GetAttempt(r.Context(), attemptID)
			if err != nil {
				http.Error(w, err.Error(), storeStatus(err))
				return
			}
			if a.QuizID != q.ID {
				http.Error(w, "attempt does not belong to quiz", 400)
				return
			}
			answers = a.Answers
		}
		buf, err := export.QuizPDF(q, answers)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", q.Title+".pdf"))
		_, _ = w.Write(buf)
	}
}
