package delivery

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/translate_speech/internal/artifact"
)

const (
	audioFileName = "speech.mp3"
	audioMIME     = "audio/mpeg"
)

type AudioHandler struct {
	store     artifact.Store
	serveOnce bool
	log       *logger.ZapLogger
}

func NewAudioHandler(store artifact.Store, serveOnce bool, log *logger.ZapLogger) *AudioHandler {
	return &AudioHandler{store: store, serveOnce: serveOnce, log: log}
}

// GET /audio/{id}
func (h *AudioHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rc, a, err := h.store.Open(r.Context(), id)
	if errors.Is(err, artifact.ErrNotFound) {
		http.Error(w, "audio not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "open artifact", Error: err})
		http.Error(w, "failed to open audio", http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	disposition := "attachment"
	if r.URL.Query().Get("inline") == "1" {
		disposition = "inline"
	}

	w.Header().Set("Content-Type", audioMIME)
	w.Header().Set("Content-Disposition", disposition+`; filename="`+audioFileName+`"`)
	if a.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(a.Size, 10))
	}

	if _, err := io.Copy(w, rc); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "stream artifact", Error: err})
		return
	}

	if h.serveOnce {
		if err := h.store.Delete(r.Context(), id); err != nil {
			h.log.Log(logger.LogEntry{Level: "warn", Message: "delete served artifact", Error: err})
		}
	}
}
