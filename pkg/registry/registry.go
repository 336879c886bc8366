// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"ezypc-storefront/internal/models"
)

var (
	ErrUnknownUseCase  = errors.New("UNKNOWN_USE_CASE")
	ErrUnknownQuestion = errors.New("INVALID_INPUT")
)

func LoadRegistry(path string) (*QuestionRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg QuestionRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	if err := reg.validate(); err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return &reg, nil
}

// Load reads path when set and falls back to the built-in question bank.
func Load(path string) (*QuestionRegistry, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadRegistry(path)
}

func (r *QuestionRegistry) validate() error {
	if len(r.UseCases) == 0 {
		return errors.New("no use cases defined")
	}
	for _, uc := range r.UseCases {
		if !uc.UseCase.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownUseCase, uc.UseCase)
		}
		if len(uc.Questions) == 0 {
			return fmt.Errorf("use case %q has no questions", uc.UseCase)
		}
		for _, q := range uc.Questions {
			if q.Text == "" || len(q.Options) == 0 {
				return fmt.Errorf("use case %q: question %q needs text and options", uc.UseCase, q.ID)
			}
		}
	}
	return nil
}

func (r *QuestionRegistry) UseCaseEntries() []UseCaseEntry {
	return r.UseCases
}

func (r *QuestionRegistry) Questions(useCase models.UseCase) ([]models.Question, error) {
	for _, uc := range r.UseCases {
		if uc.UseCase == useCase {
			return uc.Questions, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownUseCase, useCase)
}

// ValidateAnswers checks that every answer refers to a question of the use
// case. Answer text is free-form.
func (r *QuestionRegistry) ValidateAnswers(useCase models.UseCase, answers []models.Answer) error {
	questions, err := r.Questions(useCase)
	if err != nil {
		return err
	}

	known := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		known[q.Text] = struct{}{}
	}
	for _, a := range answers {
		if _, ok := known[a.Question]; !ok {
			return fmt.Errorf("%w: unknown question %q for %s", ErrUnknownQuestion, a.Question, useCase)
		}
	}
	return nil
}
