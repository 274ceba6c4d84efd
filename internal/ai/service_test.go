package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vovarama1992/voicebank_relay/internal/prompts"
)

type fakeChat struct {
	calls [][]openai.ChatCompletionMessage
	reply string
	err   error
}

func (f *fakeChat) GetCompletion(_ context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	f.calls = append(f.calls, messages)
	return f.reply, f.err
}

func nopLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

func newPersona(t *testing.T) prompts.Service {
	t.Helper()
	p, err := prompts.NewService(prompts.NewEmbeddedRepo())
	require.NoError(t, err)
	return p
}

func TestAiService_GetReply(t *testing.T) {
	persona := newPersona(t)
	chat := &fakeChat{reply: "Of course, I can help with that."}
	svc := NewAiService(chat, persona, nopLogger())

	reply, err := svc.GetReply(context.Background(), "check my balance")
	require.NoError(t, err)
	assert.Equal(t, "Of course, I can help with that.", reply)

	require.Len(t, chat.calls, 1)
	msgs := chat.calls[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, msgs[0].Role)
	assert.Equal(t, persona.SystemPrompt(), msgs[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[1].Role)
	assert.Equal(t, "check my balance", msgs[1].Content)
}

func TestAiService_PersonaIdenticalAcrossRequests(t *testing.T) {
	chat := &fakeChat{reply: "ok"}
	svc := NewAiService(chat, newPersona(t), nopLogger())

	for _, text := range []string{"first", "my card is lost", "transfer 100 dollars"} {
		_, err := svc.GetReply(context.Background(), text)
		require.NoError(t, err)
	}

	require.Len(t, chat.calls, 3)
	for _, call := range chat.calls[1:] {
		assert.Equal(t, chat.calls[0][0], call[0])
	}
}

func TestAiService_GetReplyError(t *testing.T) {
	upstream := errors.New("quota exceeded")
	svc := NewAiService(&fakeChat{err: upstream}, newPersona(t), nopLogger())

	_, err := svc.GetReply(context.Background(), "hi")
	assert.Same(t, upstream, err)
}

func TestOpenAIClient_GetCompletion(t *testing.T) {
	var got openai.ChatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "chatcmpl-1",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": "first"}},
				{"index": 1, "message": map[string]string{"role": "assistant", "content": "second"}},
			},
		})
	}))
	defer srv.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	client := NewOpenAIClient(openai.NewClientWithConfig(cfg), openai.GPT4o)

	reply, err := client.GetCompletion(context.Background(), []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: "persona"},
		{Role: openai.ChatMessageRoleUser, Content: "hello"},
	})
	require.NoError(t, err)

	assert.Equal(t, "first", reply)
	assert.Equal(t, "gpt-4o", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "persona", got.Messages[0].Content)
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-2","choices":[]}`))
	}))
	defer srv.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	client := NewOpenAIClient(openai.NewClientWithConfig(cfg), openai.GPT4o)

	_, err := client.GetCompletion(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoChoices)
}
