package speech

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const AudioExt = ".mp3"

// SynthesisError wraps any failure of the speech provider or of the temp file.
type SynthesisError struct {
	Lang string
	Err  error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("speech synthesis (%s): %v", e.Lang, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

type Service struct {
	tts TTSClient
	dir string
	log *zap.SugaredLogger
}

// NewService пишет временные файлы в dir; пустой dir = os.TempDir().
func NewService(tts TTSClient, dir string, log *zap.SugaredLogger) *Service {
	return &Service{
		tts: tts,
		dir: dir,
		log: log,
	}
}

// Synthesize returns the path of a new uniquely named .mp3 temp file.
// The caller owns the file.
func (s *Service) Synthesize(ctx context.Context, text, langCode string) (string, error) {
	out, err := os.CreateTemp(s.dir, "speech-*"+AudioExt)
	if err != nil {
		return "", &SynthesisError{Lang: langCode, Err: err}
	}
	path := out.Name()

	err = s.tts.Synthesize(ctx, text, langCode, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		s.log.Warnw("[speech] synth failed", "lang", langCode, "error", err)
		return "", &SynthesisError{Lang: langCode, Err: err}
	}

	if st, err := os.Stat(path); err == nil {
		s.log.Infow("[speech] synthesized", "lang", langCode, "path", path, "size", humanize.Bytes(uint64(st.Size())))
	}

	return path, nil
}
