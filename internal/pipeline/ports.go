package pipeline

import (
	"context"
	"io"

	"github.com/Vovarama1992/translate_speech/internal/artifact"
	"github.com/Vovarama1992/translate_speech/internal/extract"
)

type Extractor interface {
	Extract(ctx context.Context, fileName string, r io.Reader) extract.Result
}

type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text, langCode string) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, runID string, err error, details string) error
}

type Mode string

const (
	ModeText Mode = "text"
	ModeFile Mode = "file"
)

type Input struct {
	Mode     Mode
	Text     string
	FileName string
	File     io.Reader // nil = файл не загружен
	Language string
}

type Output struct {
	RunID        string
	SourceText   string
	Translation  string
	Language     string
	LanguageCode string
	Audio        artifact.Artifact
}
