package ai

import (
	"context"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/voicebank_relay/internal/prompts"
)

type AiService struct {
	chat    ChatClient
	persona prompts.Service
	log     *logger.ZapLogger
}

func NewAiService(chat ChatClient, persona prompts.Service, log *logger.ZapLogger) *AiService {
	return &AiService{
		chat:    chat,
		persona: persona,
		log:     log,
	}
}

// Messages builds the two-message exchange: persona first, transcript second.
func (s *AiService) Messages(userText string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: s.persona.SystemPrompt()},
		{Role: openai.ChatMessageRoleUser, Content: userText},
	}
}

func (s *AiService) GetReply(ctx context.Context, userText string) (string, error) {
	start := time.Now()

	reply, err := s.chat.GetCompletion(ctx, s.Messages(userText))
	if err != nil {
		s.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "chat completion failed, persona " + s.persona.Version() + ", after " + time.Since(start).Round(time.Millisecond).String(),
			Error:   err,
			Service: "ai",
		})
		return "", err
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "chat completion done in " + time.Since(start).Round(time.Millisecond).String(),
		Service: "ai",
	})
	return reply, nil
}
