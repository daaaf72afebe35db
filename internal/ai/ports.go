package ai

import "context"

// ChatClient — низкоуровневый клиент chat-completions.
type ChatClient interface {
	GetCompletion(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	Prompt      string
	Model       string
	Temperature float32
	MaxTokens   int
	TopP        float32
}

type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}
