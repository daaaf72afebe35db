package delivery

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"

	"github.com/Vovarama1992/translate_speech/internal/ai"
	"github.com/Vovarama1992/translate_speech/internal/lang"
	"github.com/Vovarama1992/translate_speech/internal/pipeline"
	"github.com/Vovarama1992/translate_speech/internal/speech"
)

type Runner interface {
	Run(ctx context.Context, in pipeline.Input) (*pipeline.Output, error)
}

// PublicURLer is implemented by stores that can hand out a direct link.
type PublicURLer interface {
	PublicURL(id string) string
}

type APIHandler struct {
	runner Runner
	public PublicURLer // может быть nil
	log    *logger.ZapLogger
}

func NewAPIHandler(runner Runner, public PublicURLer, log *logger.ZapLogger) *APIHandler {
	return &APIHandler{runner: runner, public: public, log: log}
}

type translateResponse struct {
	RunID        string `json:"run_id"`
	Translation  string `json:"translation"`
	Language     string `json:"language"`
	LanguageCode string `json:"language_code"`
	AudioURL     string `json:"audio_url"`
	AudioSize    int64  `json:"audio_size"`
	PublicURL    string `json:"public_url,omitempty"`
}

// POST /api/translate — JSON {"text","language"} или тот же multipart, что и форма.
func (h *APIHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var (
		in   pipeline.Input
		done = func() {}
		err  error
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Text     string `json:"text"`
			Language string `json:"language"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid json")
			return
		}
		in = pipeline.Input{Mode: pipeline.ModeText, Text: req.Text, Language: req.Language}
	} else {
		in, done, err = parseInput(w, r)
		defer done()
	}

	var out *pipeline.Output
	if err == nil {
		out, err = h.runner.Run(r.Context(), in)
	}

	var vErr *pipeline.ValidationError
	var eErr *pipeline.ExtractionError
	switch {
	case err == nil:
	case errors.As(err, &vErr):
		writeJSONError(w, http.StatusBadRequest, vErr.Message)
		return
	case errors.As(err, &eErr):
		writeJSONError(w, http.StatusUnprocessableEntity, eErr.Reason)
		return
	default:
		h.log.Log(logger.LogEntry{Level: "error", Message: "api translate failed", Error: err})
		writeJSONError(w, statusFor(err), "Something went wrong: "+err.Error())
		return
	}

	resp := translateResponse{
		RunID:        out.RunID,
		Translation:  out.Translation,
		Language:     out.Language,
		LanguageCode: out.LanguageCode,
		AudioURL:     "/audio/" + out.Audio.ID,
		AudioSize:    out.Audio.Size,
	}
	if h.public != nil {
		resp.PublicURL = h.public.PublicURL(out.Audio.ID)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GET /api/languages
func (h *APIHandler) Languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, lang.All())
}

func statusFor(err error) int {
	var tErr *ai.TranslationError
	var sErr *speech.SynthesisError
	if errors.As(err, &tErr) || errors.As(err, &sErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
