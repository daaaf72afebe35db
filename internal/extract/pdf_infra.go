package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFTextConverter struct{}

func NewPDFTextConverter() *PDFTextConverter {
	return &PDFTextConverter{}
}

// ConvertToText склеивает текст страниц по порядку, без разделителя.
func (c *PDFTextConverter) ConvertToText(ctx context.Context, data []byte) (text string, err error) {
	// битые PDF иногда роняют парсер паникой
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(pageText)
	}

	return sb.String(), nil
}
