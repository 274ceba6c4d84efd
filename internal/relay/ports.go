package relay

import (
	"context"

	"github.com/Vovarama1992/voicebank_relay/internal/speech"
)

type Transcriber interface {
	Transcribe(ctx context.Context, audio speech.Audio, language string) (string, error)
}

type Replier interface {
	GetReply(ctx context.Context, userText string) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type Notifier interface {
	Notify(ctx context.Context, stage string, err error, details string) error
}

// Result is the full triple returned to the caller. There is no partial form.
type Result struct {
	Transcription string
	AIResponse    string
	Audio         string
}
