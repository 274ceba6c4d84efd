package speech

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient covers both directions: Whisper for STT and the speech
// endpoint for TTS. Model and voice are fixed for the process lifetime.
type OpenAIClient struct {
	client   *openai.Client
	sttModel string
	ttsModel openai.SpeechModel
	voice    openai.SpeechVoice
}

func NewOpenAIClient(client *openai.Client, sttModel, ttsModel, voice string) *OpenAIClient {
	return &OpenAIClient{
		client:   client,
		sttModel: sttModel,
		ttsModel: openai.SpeechModel(ttsModel),
		voice:    openai.SpeechVoice(voice),
	}
}

// ГОЛОС → ТЕКСТ
func (c *OpenAIClient) Transcribe(ctx context.Context, audio Audio, language string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.sttModel,
		FilePath: filepath.Base(audio.Name),
		Reader:   audio.Reader,
		Language: language,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// ТЕКСТ → ГОЛОС
func (c *OpenAIClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          c.ttsModel,
		Input:          text,
		Voice:          c.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech audio: %w", err)
	}
	return data, nil
}

var extByType = map[string]string{
	"audio/mpeg":  ".mp3",
	"audio/mp3":   ".mp3",
	"audio/wav":   ".wav",
	"audio/webm":  ".webm",
	"audio/m4a":   ".m4a",
	"audio/x-m4a": ".m4a",
	"audio/ogg":   ".ogg",
	"audio/flac":  ".flac",
}

// DefaultFilename names an upload that arrived without a filename.
func DefaultFilename(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err == nil {
		if ext, ok := extByType[strings.ToLower(mt)]; ok {
			return "audio" + ext
		}
	}
	return "audio.mp3"
}
