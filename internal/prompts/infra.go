package prompts

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const DefaultVersion = "voicebank-v1"

//go:embed persona/voicebank.txt
var defaultPersona string

type embeddedRepo struct{}

// NewEmbeddedRepo serves the persona compiled into the binary.
func NewEmbeddedRepo() Repo {
	return embeddedRepo{}
}

func (embeddedRepo) Load() (*Persona, error) {
	return &Persona{Version: DefaultVersion, Text: defaultPersona}, nil
}

type fileRepo struct {
	path string
}

// NewFileRepo reads the persona from a text file on disk.
func NewFileRepo(path string) Repo {
	return &fileRepo{path: path}
}

func (r *fileRepo) Load() (*Persona, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read persona file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("persona file %s is empty", r.path)
	}

	return &Persona{
		Version: "file:" + filepath.Base(r.path),
		Text:    string(data),
	}, nil
}
