package relay

import (
	"encoding/base64"
	"mime"
	"strings"
)

// MaxUploadBytes caps one uploaded clip (25 MiB).
const MaxUploadBytes int64 = 25 << 20

var allowedMediaTypes = map[string]struct{}{
	"audio/mpeg":               {},
	"audio/mp3":                {},
	"audio/wav":                {},
	"audio/webm":               {},
	"audio/m4a":                {},
	"audio/ogg":                {},
	"audio/flac":               {},
	"audio/x-m4a":              {},
	"application/octet-stream": {},
}

// Upload is a clip received in a multipart form, already buffered.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CheckMediaType accepts the declared part type when its base media type is
// on the allow-list. Parameters such as codecs are ignored.
func CheckMediaType(contentType string) error {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ErrInvalidFileType
	}
	if _, ok := allowedMediaTypes[strings.ToLower(mt)]; !ok {
		return ErrInvalidFileType
	}
	return nil
}

func CheckSize(size int64) error {
	if size > MaxUploadBytes {
		return ErrFileTooLarge
	}
	return nil
}

func ValidateUpload(u *Upload) error {
	if u == nil || len(u.Data) == 0 {
		return ErrNoAudio
	}
	if err := CheckMediaType(u.ContentType); err != nil {
		return err
	}
	return CheckSize(int64(len(u.Data)))
}

const audioDataURIPrefix = "data:audio/mp3;base64,"

func AudioDataURI(audio []byte) string {
	return audioDataURIPrefix + base64.StdEncoding.EncodeToString(audio)
}
