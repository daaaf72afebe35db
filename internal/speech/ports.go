package speech

import (
	"context"
	"io"
)

// TTSClient пишет MP3-поток озвучки в out.
type TTSClient interface {
	Synthesize(ctx context.Context, text, langCode string, out io.Writer) error
}
