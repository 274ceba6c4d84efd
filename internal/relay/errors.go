package relay

import "errors"

// Client input errors. Returned before any upstream call is made.
var (
	ErrFilenameRequired = errors.New("filename required")
	ErrFileNotFound     = errors.New("file not found")
	ErrNoAudio          = errors.New("no audio file provided")
	ErrInvalidFileType  = errors.New("invalid file type")
	ErrFileTooLarge     = errors.New("file too large")
)

type Stage string

const (
	StageTranscribe Stage = "transcribe"
	StageChat       Stage = "chat"
	StageSynthesize Stage = "synthesize"
)

// StageError marks an upstream failure. Error() is the upstream message
// unchanged so callers see exactly what the collaborator reported.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}
