package delivery

import (
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/goccy/go-json"

	"github.com/Vovarama1992/voicebank_relay/internal/relay"
)

const redactedMessage = "Failed to process audio"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// clientErrors maps input errors to status and the message shown to callers.
var clientErrors = []struct {
	err     error
	status  int
	message string
}{
	{relay.ErrFilenameRequired, http.StatusBadRequest, "Filename required"},
	{relay.ErrFileNotFound, http.StatusNotFound, "File not found"},
	{relay.ErrNoAudio, http.StatusBadRequest, "No audio file provided"},
	{relay.ErrInvalidFileType, http.StatusBadRequest, "Invalid file type. Only audio files are allowed."},
	{relay.ErrFileTooLarge, http.StatusBadRequest, "File too large"},
}

func (h *RelayHandler) writeError(w http.ResponseWriter, err error) {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			writeJSON(w, ce.status, errorResponse{Error: ce.message})
			return
		}
	}

	// StageError is already logged by the relay with its stage.
	var stageErr *relay.StageError
	if !errors.As(err, &stageErr) {
		h.log.Log(logger.LogEntry{Level: "error", Message: "processing error", Error: err, Service: "delivery"})
	}

	msg := err.Error()
	if h.redact {
		msg = redactedMessage
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msg})
}
