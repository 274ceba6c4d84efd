package prompts

import "fmt"

type service struct {
	persona Persona
}

// NewService loads the persona once. The returned service never mutates it.
func NewService(repo Repo) (Service, error) {
	p, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load persona: %w", err)
	}
	return &service{persona: *p}, nil
}

func (s *service) SystemPrompt() string {
	return s.persona.Text
}

func (s *service) Version() string {
	return s.persona.Version
}
