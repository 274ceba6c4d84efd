package ports

import (
	"context"
	"time"
)

// Exchange is one completed request: what was heard, what was answered.
type Exchange struct {
	Transcript string
	Reply      string
	Language   string
	Audio      []byte
	At         time.Time
}

type ArchiveService interface {
	Save(ctx context.Context, ex Exchange) (string, error)
}
