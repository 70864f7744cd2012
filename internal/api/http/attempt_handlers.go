package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/quizforge/quizforge/internal/auth/middleware"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/rbac"
)

type attemptResponse struct {
	quiz.Attempt
	// Warnings flag questions the taking view must render as an
	// inline error (e.g. a true/false question missing one of its two
	// options) instead of guessing at their shape.
	Warnings []string `json:"warnings,omitempty"`
}

func CreateAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuizID string `json:"quiz_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.QuizID == "" {
			http.Error(w, "quiz_id required", 400)
			return
		}
		userID := auth.SubjectFromContext(r.Context())
		a, err := store.NewAttempt(r.Context(), req.QuizID, userID)
		if err != nil {
			http.Error(w, err.Error(), storeStatus(err))
			return
		}
		resp := attemptResponse{Attempt: a}
		if q, err := store.GetQuiz(r.Context(), req.QuizID); err == nil {
			for _, question := range q.Questions {
				if verr := question.Validate(); verr != nil {
					resp.Warnings = append(resp.Warnings, verr.Error())
				}
			}
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func SaveAnswersHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "attemptID")
		var answers quiz.AnswerMap
		if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		a, err := store.SaveAnswers(r.Context(), id, answers)
		if err != nil {
			http.Error(w, err.Error(), storeStatus(err))
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func SubmitAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "attemptID")
		a, err := store.Submit(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), storeStatus(err))
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func GetAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "attemptID")
		a, err := store.GetAttempt(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), storeStatus(err))
			return
		}
		// Takers may only see their own attempts.
		role := rbac.RoleFromContext(r.Context())
		if role == "taker" && a.UserID != auth.SubjectFromContext(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}
