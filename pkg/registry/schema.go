// pkg/registry/schema.go
package registry

import "ezypc-storefront/internal/models"

type QuestionRegistry struct {
	Version     string         `json:"version"`
	LastUpdated string         `json:"lastUpdated"`
	UseCases    []UseCaseEntry `json:"useCases"`
}

type UseCaseEntry struct {
	UseCase     models.UseCase    `json:"useCase"`
	DisplayName string            `json:"displayName"`
	Description string            `json:"description"`
	Questions   []models.Question `json:"questions"`
}
