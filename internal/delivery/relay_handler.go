package delivery

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/goccy/go-json"

	"github.com/Vovarama1992/voicebank_relay/internal/relay"
)

const (
	maxJSONBody      = 100 << 10
	maxLanguageBytes = 64
	// multipart framing and the language field on top of the clip itself
	multipartOverhead = 1 << 20
)

type RelayService interface {
	ProcessLocalFile(ctx context.Context, filename, language string) (*relay.Result, error)
	ProcessUpload(ctx context.Context, u *relay.Upload, language string) (*relay.Result, error)
}

type RelayHandler struct {
	svc    RelayService
	log    *logger.ZapLogger
	redact bool
}

func NewRelayHandler(svc RelayService, log *logger.ZapLogger, redactUpstreamErrors bool) *RelayHandler {
	return &RelayHandler{
		svc:    svc,
		log:    log,
		redact: redactUpstreamErrors,
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type processResponse struct {
	Success       bool   `json:"success"`
	Transcription string `json:"transcription"`
	AIResponse    string `json:"aiResponse"`
	Audio         string `json:"audio"`
}

// GET /health
func (h *RelayHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Message: "VoiceBank AI Server is running",
	})
}

// POST /transcribe-file
func (h *RelayHandler) TranscribeFile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename string `json:"filename"`
		Language string `json:"language"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid form body"})
			return
		}
		req.Filename = r.PostForm.Get("filename")
		req.Language = r.PostForm.Get("language")
	} else {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
			return
		}
		// пустое тело = нет filename, это 400 ниже, а не ошибка JSON
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
				return
			}
		}
	}

	res, err := h.svc.ProcessLocalFile(r.Context(), req.Filename, strings.TrimSpace(req.Language))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(res))
}

// POST /transcribe
func (h *RelayHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, relay.MaxUploadBytes+multipartOverhead)

	upload, language, err := readUpload(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	res, err := h.svc.ProcessUpload(r.Context(), upload, language)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(res))
}

func toResponse(res *relay.Result) processResponse {
	return processResponse{
		Success:       true,
		Transcription: res.Transcription,
		AIResponse:    res.AIResponse,
		Audio:         res.Audio,
	}
}

// readUpload streams the multipart body part by part. The media type of the
// "audio" part is checked before any of its bytes are read, and the clip is
// buffered in memory only; nothing is spooled to disk.
func readUpload(r *http.Request) (*relay.Upload, string, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, "", relay.ErrNoAudio
	}

	var (
		upload   *relay.Upload
		language string
	)

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", bodyError(err)
		}

		switch {
		case part.FormName() == "audio" && part.FileName() != "" && upload == nil:
			ct := part.Header.Get("Content-Type")
			if err := relay.CheckMediaType(ct); err != nil {
				return nil, "", err
			}

			data, err := io.ReadAll(io.LimitReader(part, relay.MaxUploadBytes+1))
			if err != nil {
				return nil, "", bodyError(err)
			}
			if err := relay.CheckSize(int64(len(data))); err != nil {
				return nil, "", err
			}

			upload = &relay.Upload{
				Filename:    part.FileName(),
				ContentType: ct,
				Data:        data,
			}

		case part.FormName() == "language" && part.FileName() == "":
			b, err := io.ReadAll(io.LimitReader(part, maxLanguageBytes))
			if err != nil {
				return nil, "", bodyError(err)
			}
			language = strings.TrimSpace(string(b))
		}

		_ = part.Close()
	}

	if upload == nil {
		return nil, "", relay.ErrNoAudio
	}
	return upload, language, nil
}

func bodyError(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return relay.ErrFileTooLarge
	}
	return relay.ErrNoAudio
}
