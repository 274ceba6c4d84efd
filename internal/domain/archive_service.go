package domain

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Vovarama1992/voicebank_relay/internal/ports"
)

type archiveService struct {
	client ports.S3Client
	newID  func() string
}

func NewArchiveService(client ports.S3Client) ports.ArchiveService {
	return &archiveService{
		client: client,
		newID:  uuid.NewString,
	}
}

// ObjectKey: путь в бакете: <дата>/<uuid>.mp3
func (s *archiveService) ObjectKey(at time.Time) string {
	return fmt.Sprintf("%s/%s.mp3", at.UTC().Format("2006-01-02"), s.newID())
}

// Save stores the reply audio. Transcript and reply text are not stored,
// only their lengths, so the bucket holds no customer speech in clear text.
func (s *archiveService) Save(ctx context.Context, ex ports.Exchange) (string, error) {
	if len(ex.Audio) == 0 {
		return "", fmt.Errorf("empty audio")
	}
	if ex.At.IsZero() {
		ex.At = time.Now()
	}

	meta := map[string]string{
		"transcript-chars": strconv.Itoa(len([]rune(ex.Transcript))),
		"reply-chars":      strconv.Itoa(len([]rune(ex.Reply))),
	}
	if ex.Language != "" {
		meta["language"] = ex.Language
	}

	key := s.ObjectKey(ex.At)
	return s.client.PutObject(ctx, key, bytes.NewReader(ex.Audio), int64(len(ex.Audio)), "audio/mpeg", meta)
}
