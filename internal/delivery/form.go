package delivery

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Vovarama1992/translate_speech/internal/pipeline"
)

// MaxUpload — как и раньше, 20 MiB на загрузку.
const MaxUpload = 20 << 20

// parseInput reads the multipart (or urlencoded) form shared by the page and the API.
// The returned closer must be called once the pipeline is done with the file.
func parseInput(w http.ResponseWriter, r *http.Request) (pipeline.Input, func(), error) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, MaxUpload+1<<20)

	err := r.ParseMultipartForm(MaxUpload)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return pipeline.Input{}, noop, &pipeline.ValidationError{
				Field:   "file",
				Message: fmt.Sprintf("File is too large (max %s).", humanize.IBytes(MaxUpload)),
			}
		}
		return pipeline.Input{}, noop, fmt.Errorf("invalid form: %w", err)
	}

	in := pipeline.Input{
		Mode:     pipeline.Mode(strings.TrimSpace(r.FormValue("method"))),
		Text:     r.FormValue("text"),
		Language: r.FormValue("language"),
	}
	if in.Mode == "" {
		in.Mode = pipeline.ModeText
	}

	if in.Mode != pipeline.ModeFile {
		return in, noop, nil
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return in, noop, nil
	}
	if err != nil {
		return in, noop, fmt.Errorf("read upload: %w", err)
	}
	if header.Size > MaxUpload {
		file.Close()
		return in, noop, &pipeline.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("File is too large (%s, max %s).", humanize.IBytes(uint64(header.Size)), humanize.IBytes(MaxUpload)),
		}
	}

	in.FileName = header.Filename
	in.File = file
	return in, closeFile(file), nil
}

func closeFile(f multipart.File) func() {
	return func() { f.Close() }
}
