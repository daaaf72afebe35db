package pipeline

import "fmt"

// ValidationError — пользователь остаётся на форме, сеть не трогаем.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ExtractionError carries the reason a file could not be turned into text.
// A failed extraction is never sent for translation.
type ExtractionError struct {
	FileName string
	Reason   string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Reason, e.FileName)
}
