package extract

import "context"

const (
	UnsupportedFormat = "Unsupported file format."
	readErrorPrefix   = "Error reading file: "
)

// Converter turns the raw bytes of one file format into plain text.
type Converter interface {
	ConvertToText(ctx context.Context, data []byte) (string, error)
}

// Result отделяет извлечённый текст от причины отказа,
// чтобы текст ошибки никогда не ушёл дальше в перевод.
type Result struct {
	Text   string
	Reason string
	OK     bool
}

func success(text string) Result {
	return Result{Text: text, OK: true}
}

func failure(reason string) Result {
	return Result{Reason: reason}
}

// String renders the payload on success and the human-readable reason otherwise.
func (r Result) String() string {
	if r.OK {
		return r.Text
	}
	return r.Reason
}
