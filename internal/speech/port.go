package speech

import (
	"context"
	"io"
)

// Audio is one clip handed to the transcription API. Name is the original
// filename; the API infers the container format from its extension.
type Audio struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

type STTClient interface {
	Transcribe(ctx context.Context, audio Audio, language string) (string, error) // голос → текст
}

type TTSClient interface {
	Synthesize(ctx context.Context, text string) ([]byte, error) // текст → голос (mp3)
}
