package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	temperature = 0.7
	maxTokens   = 1000
	topP        = 1
)

var errEmptyChoices = errors.New("response contained no choices")

// TranslationError wraps any transport or API failure of the chat-completion call.
type TranslationError struct {
	StatusCode int
	Err        error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("Error during translation: %v", e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// Diagnosis gives a short operator-facing hint for the failure.
func (e *TranslationError) Diagnosis() string {
	switch {
	case e.StatusCode == 401:
		return "Invalid Groq API key."
	case e.StatusCode == 404:
		return "Model not found."
	case e.StatusCode == 429:
		return "Groq rate limit exceeded."
	case e.StatusCode == 400:
		return "Malformed request to Groq."
	case e.StatusCode >= 500:
		return "Groq internal error."
	case errors.Is(e.Err, context.DeadlineExceeded):
		return "Groq request timed out."
	}
	return "Unknown translation error."
}

type Service struct {
	client ChatClient
	model  string
	log    *zap.SugaredLogger
}

func NewService(client ChatClient, model string, log *zap.SugaredLogger) *Service {
	return &Service{
		client: client,
		model:  model,
		log:    log,
	}
}

func Prompt(text, targetLanguage string) string {
	return fmt.Sprintf("Translate the following text to %s:\n\n%s", targetLanguage, text)
}

// Translate делает ровно один запрос, без ретраев и без разбиения текста.
// Ответ, обрезанный по max_tokens, возвращается как есть.
func (s *Service) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	start := time.Now()

	reply, err := s.client.GetCompletion(ctx, CompletionRequest{
		Prompt:      Prompt(text, targetLanguage),
		Model:       s.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		TopP:        topP,
	})
	if err != nil {
		tErr := &TranslationError{StatusCode: statusCode(err), Err: err}
		s.log.Warnw("[ai] translation failed",
			"model", s.model, "lang", targetLanguage, "status", tErr.StatusCode,
			"diag", tErr.Diagnosis(), "error", err)
		return "", tErr
	}

	s.log.Infow("[ai] translation done",
		"model", s.model, "lang", targetLanguage, "chars_in", len(text), "chars_out", len(reply),
		"took", time.Since(start).String())

	return strings.TrimSpace(reply), nil
}

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
