package relay

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"

	"github.com/Vovarama1992/voicebank_relay/internal/ports"
	"github.com/Vovarama1992/voicebank_relay/internal/speech"
)

const archiveTimeout = 30 * time.Second

type Service struct {
	stt      Transcriber
	ai       Replier
	tts      Synthesizer
	notifier Notifier
	archive  ports.ArchiveService
	filesDir string
	log      *logger.ZapLogger
}

type Option func(*Service)

// WithArchive stores every successful reply in the background.
func WithArchive(a ports.ArchiveService) Option {
	return func(s *Service) { s.archive = a }
}

func NewService(
	stt Transcriber,
	ai Replier,
	tts Synthesizer,
	notifier Notifier,
	filesDir string,
	log *logger.ZapLogger,
	opts ...Option,
) *Service {
	s := &Service{
		stt:      stt,
		ai:       ai,
		tts:      tts,
		notifier: notifier,
		filesDir: filesDir,
		log:      log,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ProcessLocalFile runs the pipeline on a file under the configured
// directory. The file is closed as soon as transcription returns.
func (s *Service) ProcessLocalFile(ctx context.Context, filename, language string) (*Result, error) {
	path, err := ResolveLocalFile(s.filesDir, filename)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrFileNotFound
	}

	s.info(fmt.Sprintf("local file %s", filepath.Base(path)))

	audio := speech.Audio{Name: filepath.Base(path), Reader: f}
	return s.run(ctx, audio, language, func() { _ = f.Close() })
}

// ProcessUpload validates an in-memory upload and runs the pipeline on it.
func (s *Service) ProcessUpload(ctx context.Context, u *Upload, language string) (*Result, error) {
	if err := ValidateUpload(u); err != nil {
		return nil, err
	}

	s.info(fmt.Sprintf("upload %q %s (%s)", u.Filename, u.ContentType, humanize.IBytes(uint64(len(u.Data)))))

	audio := speech.Audio{
		Name:        u.Filename,
		ContentType: u.ContentType,
		Reader:      bytes.NewReader(u.Data),
	}
	return s.run(ctx, audio, language, nil)
}

func (s *Service) run(ctx context.Context, audio speech.Audio, language string, release func()) (*Result, error) {
	start := time.Now()

	// 1) голос -> текст
	transcript, err := s.stt.Transcribe(ctx, audio, language)
	if release != nil {
		release()
	}
	if err != nil {
		return nil, s.fail(ctx, StageTranscribe, err, fmt.Sprintf("file=%s language=%q", audio.Name, language))
	}
	s.info(fmt.Sprintf("transcribed %d chars in %s", len(transcript), since(start)))

	// 2) ответ модели
	reply, err := s.ai.GetReply(ctx, transcript)
	if err != nil {
		return nil, s.fail(ctx, StageChat, err, fmt.Sprintf("transcript %d chars", len(transcript)))
	}

	// 3) ответ -> голос
	audioOut, err := s.tts.Synthesize(ctx, reply)
	if err != nil {
		return nil, s.fail(ctx, StageSynthesize, err, fmt.Sprintf("reply %d chars", len(reply)))
	}

	s.info(fmt.Sprintf("exchange done in %s, reply audio %s", since(start), humanize.IBytes(uint64(len(audioOut)))))

	if s.archive != nil {
		s.store(ctx, ports.Exchange{
			Transcript: transcript,
			Reply:      reply,
			Language:   language,
			Audio:      audioOut,
			At:         time.Now(),
		})
	}

	return &Result{
		Transcription: transcript,
		AIResponse:    reply,
		Audio:         AudioDataURI(audioOut),
	}, nil
}

func (s *Service) fail(ctx context.Context, stage Stage, err error, details string) error {
	s.log.Log(logger.LogEntry{
		Level:   "error",
		Message: fmt.Sprintf("%s failed: %s", stage, details),
		Error:   err,
		Service: "relay",
	})

	if s.notifier != nil {
		if nErr := s.notifier.Notify(ctx, string(stage), err, details); nErr != nil {
			s.log.Log(logger.LogEntry{Level: "warn", Message: "admin alert not sent", Error: nErr, Service: "relay"})
		}
	}

	return &StageError{Stage: stage, Err: err}
}

// store uploads in the background; the response never waits for it.
func (s *Service) store(ctx context.Context, ex ports.Exchange) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, archiveTimeout)
		defer cancel()

		url, err := s.archive.Save(ctx, ex)
		if err != nil {
			s.log.Log(logger.LogEntry{Level: "warn", Message: "archive upload failed", Error: err, Service: "relay"})
			return
		}
		s.info("archived " + url)
	}()
}

func (s *Service) info(msg string) {
	s.log.Log(logger.LogEntry{Level: "info", Message: msg, Service: "relay"})
}

func since(t time.Time) string {
	return time.Since(t).Round(time.Millisecond).String()
}
