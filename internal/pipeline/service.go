package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/Vovarama1992/translate_speech/internal/artifact"
	"github.com/Vovarama1992/translate_speech/internal/lang"
)

type Service struct {
	extractor  Extractor
	translator Translator
	synth      Synthesizer
	store      artifact.Store
	notifier   Notifier
	log        *zap.SugaredLogger
}

func NewService(
	extractor Extractor,
	translator Translator,
	synth Synthesizer,
	store artifact.Store,
	notifier Notifier,
	log *zap.SugaredLogger,
) *Service {
	return &Service{
		extractor:  extractor,
		translator: translator,
		synth:      synth,
		store:      store,
		notifier:   notifier,
		log:        log,
	}
}

// Run выполняет один проход: текст → перевод → озвучка → артефакт.
// Всё синхронно, без ретраев; первая ошибка прерывает проход.
// If synthesis fails after a successful translation, the partial Output
// (no Audio) is returned together with the error.
func (s *Service) Run(ctx context.Context, in Input) (*Output, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	runID := xid.New().String()
	start := time.Now()
	log := s.log.With("run", runID, "mode", string(in.Mode), "lang", in.Language)
	log.Infow("[pipeline] start")

	// 1) исходный текст
	source := strings.TrimSpace(in.Text)
	if in.Mode == ModeFile {
		res := s.extractor.Extract(ctx, in.FileName, in.File)
		if !res.OK {
			log.Warnw("[pipeline] extraction failed", "file", in.FileName, "reason", res.Reason)
			return nil, &ExtractionError{FileName: in.FileName, Reason: res.Reason}
		}
		source = res.Text
		if strings.TrimSpace(source) == "" {
			return nil, &ExtractionError{FileName: in.FileName, Reason: "No text found in file."}
		}
		log.Infow("[pipeline] extracted", "file", in.FileName, "chars", len(source))
	}

	// 2) перевод
	translated, err := s.translator.Translate(ctx, source, in.Language)
	if err != nil {
		s.fail(ctx, runID, err, "translate to "+in.Language)
		return nil, err
	}

	if !lang.Supported(in.Language) {
		log.Warnw("[pipeline] no voice for language, using default", "code", lang.DefaultCode)
	}

	out := &Output{
		RunID:        runID,
		SourceText:   source,
		Translation:  translated,
		Language:     in.Language,
		LanguageCode: lang.Code(in.Language),
	}

	// 3) озвучка; перевод уже готов и отдаётся даже при ошибке дальше
	path, err := s.synth.Synthesize(ctx, translated, out.LanguageCode)
	if err != nil {
		s.fail(ctx, runID, err, "synthesize "+out.LanguageCode)
		return out, err
	}
	defer os.Remove(path)

	// 4) в хранилище артефактов
	out.Audio, err = s.saveAudio(ctx, path)
	if err != nil {
		s.fail(ctx, runID, err, "store audio")
		return out, err
	}

	log.Infow("[pipeline] done", "artifact", out.Audio.ID, "took", time.Since(start).String())

	return out, nil
}

func validate(in Input) error {
	switch in.Mode {
	case ModeText:
		if strings.TrimSpace(in.Text) == "" {
			return &ValidationError{Field: "text", Message: "Please enter some text."}
		}
	case ModeFile:
		if in.File == nil {
			return &ValidationError{Field: "file", Message: "Please upload a file."}
		}
	default:
		return &ValidationError{Field: "method", Message: "Please choose an input method."}
	}

	if strings.TrimSpace(in.Language) == "" {
		return &ValidationError{Field: "language", Message: "Please select a target language."}
	}
	return nil
}

func (s *Service) saveAudio(ctx context.Context, path string) (artifact.Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return artifact.Artifact{}, fmt.Errorf("open synthesized audio: %w", err)
	}
	defer f.Close()

	return s.store.Save(ctx, f)
}

func (s *Service) fail(ctx context.Context, runID string, err error, details string) {
	// уведомление не должно зависеть от отменённого запроса
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if nErr := s.notifier.Notify(nctx, runID, err, details); nErr != nil {
		s.log.Warnw("[pipeline] notify failed", "run", runID, "error", nErr)
	}
}
