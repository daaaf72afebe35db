package extract

import (
	"context"
	"fmt"
	"unicode/utf8"
)

type PlainTextConverter struct{}

func NewPlainTextConverter() *PlainTextConverter {
	return &PlainTextConverter{}
}

func (c *PlainTextConverter) ConvertToText(_ context.Context, data []byte) (string, error) {
	if !utf8.Valid(data) {
		for i := 0; i < len(data); {
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && size <= 1 {
				return "", fmt.Errorf("'utf-8' codec can't decode byte 0x%02x in position %d: invalid start byte", data[i], i)
			}
			i += size
		}
	}
	return string(data), nil
}
