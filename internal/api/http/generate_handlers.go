package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/generate"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/storage"
)

// maxNoteBytes caps uploaded note size at 1 MiB, matching what the
// generation backend accepts.
const maxNoteBytes = 1 << 20

type generateRequest struct {
	Text         string `json:"text,omitempty"`
	NoteKey      string `json:"note_key,omitempty"`
	NumQuestions int    `json:"num_questions"`
	NumOptions   int    `json:"num_options"`
	QuestionType string `json:"question_type"`
	Difficulty   string `json:"difficulty"`
}

type generateResponse struct {
	Questions []quiz.Question `json:"questions"`
	Source    generate.Source `json:"source"`
}

// GenerateHandler turns notes (inline text or a previously uploaded
// note) into normalized questions. Backend failures are invisible
// here: the client substitutes demo questions.
func GenerateHandler(gen *generate.Client, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		text := req.Text
		if text == "" && req.NoteKey != "" {
			rc, err := bs.Get(req.NoteKey)
			if err != nil {
				http.Error(w, "note not found", 404)
				return
			}
			buf, err := io.ReadAll(io.LimitReader(rc, maxNoteBytes))
			rc.Close()
			if err != nil {
				http.Error(w, "read note", 500)
				return
			}
			text = string(buf)
		}
		if strings.TrimSpace(text) == "" {
			http.Error(w, "text or note_key required", 400)
			return
		}
		if req.NumQuestions <= 0 {
			req.NumQuestions = 5
		}
		if req.NumOptions <= 0 {
			req.NumOptions = 4
		}
		if req.QuestionType == "" {
			req.QuestionType = string(generate.MixMultipleChoice)
		}
		if req.Difficulty == "" {
			req.Difficulty = string(generate.DifficultyMedium)
		}

		raws, source := gen.Generate(r.Context(), generate.Request{
			Text:         text,
			NumQuestions: req.NumQuestions,
			NumOptions:   req.NumOptions,
			QuestionType: req.QuestionType,
			Difficulty:   req.Difficulty,
		})
		writeJSON(w, http.StatusOK, generateResponse{
			Questions: quiz.Normalize(raws),
			Source:    source,
		})
	}
}

// UploadNoteHandler stores a raw note body and returns its key for a
// later generate call.
func UploadNoteHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := "notes/" + uuid.NewString() + ".txt"
		if _, err := bs.Put(key, io.LimitReader(r.Body, maxNoteBytes)); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"note_key": key})
	}
}
