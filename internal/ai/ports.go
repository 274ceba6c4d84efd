package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

type ChatClient interface {
	GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

type Service interface {
	// GetReply отправляет persona + расшифровку и возвращает первый вариант ответа.
	// История не хранится: каждый вызов независим.
	GetReply(ctx context.Context, userText string) (string, error)
}
