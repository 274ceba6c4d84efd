package prompts

// Persona is the system prompt sent ahead of every transcript.
type Persona struct {
	Version string `json:"version"`
	Text    string `json:"text"`
}

type Repo interface {
	Load() (*Persona, error)
}

type Service interface {
	SystemPrompt() string
	Version() string
}
