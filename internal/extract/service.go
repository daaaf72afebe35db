package extract

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// Extensions accepted by the upload form, in display order.
var Extensions = []string{"pdf", "txt", "csv", "xlsx"}

type Service struct {
	converters map[string]Converter
}

func NewService() *Service {
	return &Service{
		converters: map[string]Converter{
			"txt":  NewPlainTextConverter(),
			"pdf":  NewPDFTextConverter(),
			"csv":  NewCSVConverter(),
			"xlsx": NewXLSXConverter(),
		},
	}
}

// Extension returns the lower-cased suffix after the last dot, without the dot.
func Extension(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}

// Extract never returns an error: every failure is carried in Result.Reason.
func (s *Service) Extract(ctx context.Context, fileName string, r io.Reader) Result {
	conv, ok := s.converters[Extension(fileName)]
	if !ok {
		return failure(UnsupportedFormat)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return failure(readErrorPrefix + err.Error())
	}

	text, err := conv.ConvertToText(ctx, data)
	if err != nil {
		return failure(readErrorPrefix + err.Error())
	}

	return success(text)
}
