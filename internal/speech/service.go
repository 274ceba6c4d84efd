package speech

import (
	"context"
)

// === Единый сервис (и для стт и для ттс) ===

type Service struct {
	stt STTClient
	tts TTSClient
}

func NewService(stt STTClient, tts TTSClient) *Service {
	return &Service{
		stt: stt,
		tts: tts,
	}
}

// Transcribe passes language through untouched; empty means auto-detect.
func (s *Service) Transcribe(ctx context.Context, audio Audio, language string) (string, error) {
	if audio.Name == "" {
		audio.Name = DefaultFilename(audio.ContentType)
	}
	return s.stt.Transcribe(ctx, audio, language)
}

func (s *Service) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return s.tts.Synthesize(ctx, text)
}
