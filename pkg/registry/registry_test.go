package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"ezypc-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg := Default()
	require.NoError(t, reg.validate())
	require.Len(t, reg.UseCaseEntries(), 3)

	budgets := map[models.UseCase]string{
		models.UseCaseGaming:  "Under ₹60,000",
		models.UseCaseStudent: "Under ₹40,000",
		models.UseCaseGeneral: "Under ₹35,000",
	}
	for useCase, opener := range budgets {
		questions, err := reg.Questions(useCase)
		require.NoError(t, err)
		require.Len(t, questions, 4)
		assert.Equal(t, "What is your approximate budget?", questions[0].Text)
		assert.Equal(t, opener, questions[0].Options[0])
		for _, q := range questions {
			assert.Len(t, q.Options, 4, q.ID)
		}
	}
}

func TestQuestions_UnknownUseCase(t *testing.T) {
	_, err := Default().Questions("Workstation")
	assert.ErrorIs(t, err, ErrUnknownUseCase)
}

func TestValidateAnswers(t *testing.T) {
	reg := Default()

	tests := []struct {
		name    string
		useCase models.UseCase
		answers []models.Answer
		wantErr error
	}{
		{
			name:    "known questions",
			useCase: models.UseCaseGaming,
			answers: []models.Answer{
				{Question: "What is your approximate budget?", Answer: "Under ₹60,000"},
				{Question: "What is more important to you?", Answer: "High frame rates (144+ FPS)"},
			},
		},
		{
			name:    "free-form answer accepted",
			useCase: models.UseCaseStudent,
			answers: []models.Answer{{Question: "What is your primary field of study?", Answer: "Marine biology"}},
		},
		{
			name:    "no answers",
			useCase: models.UseCaseGeneral,
		},
		{
			name:    "question from another use case",
			useCase: models.UseCaseGeneral,
			answers: []models.Answer{{Question: "What kind of games do you primarily play?", Answer: "A mix of everything"}},
			wantErr: ErrUnknownQuestion,
		},
		{
			name:    "unknown use case",
			useCase: "Crypto Mining",
			wantErr: ErrUnknownUseCase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.ValidateAnswers(tt.useCase, tt.answers)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()

	custom := &QuestionRegistry{
		Version: "2.0.0",
		UseCases: []UseCaseEntry{{
			UseCase: models.UseCaseGaming,
			Questions: []models.Question{{
				ID:      "gaming-budget",
				Text:    "Budget?",
				Options: []string{"Low", "High"},
			}},
		}},
	}
	data, err := json.Marshal(custom)
	require.NoError(t, err)
	path := filepath.Join(dir, "questions.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", reg.Version)

	_, err = reg.Questions(models.UseCaseStudent)
	assert.ErrorIs(t, err, ErrUnknownUseCase)

	fallback, err := Load("")
	require.NoError(t, err)
	assert.Len(t, fallback.UseCases, 3)
}

func TestLoadRegistry_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]string{
		"not json":         `{`,
		"empty":            `{"useCases": []}`,
		"bad use case":     `{"useCases": [{"useCase": "Mining", "questions": [{"text": "q", "options": ["a"]}]}]}`,
		"question no opts": `{"useCases": [{"useCase": "Gaming", "questions": [{"text": "q", "options": []}]}]}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, filepath.Base(t.Name())+".json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

			_, err := LoadRegistry(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadRegistry(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
