package delivery

import (
	_ "embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"

	"github.com/Vovarama1992/translate_speech/internal/extract"
	"github.com/Vovarama1992/translate_speech/internal/lang"
	"github.com/Vovarama1992/translate_speech/internal/pipeline"
)

//go:embed templates/index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	Languages []lang.Language
	Selected  string
	Method    string
	Text      string
	Accept    string
	MaxUpload string

	Warning     string
	Error       string
	Translation string
	AudioURL    string
	Player      bool
}

type PageHandler struct {
	runner    Runner
	serveOnce bool
	log       *logger.ZapLogger
}

func NewPageHandler(runner Runner, serveOnce bool, log *logger.ZapLogger) *PageHandler {
	return &PageHandler{runner: runner, serveOnce: serveOnce, log: log}
}

func newPageData() pageData {
	accept := make([]string, len(extract.Extensions))
	for i, ext := range extract.Extensions {
		accept[i] = "." + ext
	}
	return pageData{
		Languages: lang.All(),
		Selected:  lang.Names()[0],
		Method:    string(pipeline.ModeText),
		Accept:    strings.Join(accept, ","),
		MaxUpload: humanize.IBytes(MaxUpload),
	}
}

// GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, newPageData())
}

// POST /translate
func (h *PageHandler) Translate(w http.ResponseWriter, r *http.Request) {
	data := newPageData()

	in, done, err := parseInput(w, r)
	defer done()

	data.Method = string(in.Mode)
	data.Text = in.Text
	if in.Language != "" {
		data.Selected = in.Language
	}

	var out *pipeline.Output
	if err == nil {
		out, err = h.runner.Run(r.Context(), in)
	}

	var vErr *pipeline.ValidationError
	var eErr *pipeline.ExtractionError
	switch {
	case err == nil:
		data.Translation = out.Translation
		data.AudioURL = "/audio/" + out.Audio.ID
		data.Player = !h.serveOnce
		h.render(w, http.StatusOK, data)

	case errors.As(err, &vErr):
		data.Warning = vErr.Message
		h.render(w, http.StatusBadRequest, data)

	case errors.As(err, &eErr):
		data.Warning = eErr.Reason
		h.render(w, http.StatusUnprocessableEntity, data)

	default:
		h.log.Log(logger.LogEntry{Level: "error", Message: "translate failed", Error: err})
		if out != nil {
			data.Translation = out.Translation
		}
		data.Error = "Something went wrong: " + err.Error()
		h.render(w, statusFor(err), data)
	}
}

func (h *PageHandler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, data); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "render page", Error: err})
	}
}
