package models

type UseCase string

const (
	UseCaseGaming  UseCase = "Gaming"
	UseCaseStudent UseCase = "Student"
	UseCaseGeneral UseCase = "General Use"
)

func (u UseCase) Valid() bool {
	switch u {
	case UseCaseGaming, UseCaseStudent, UseCaseGeneral:
		return true
	}
	return false
}

// Answer is one answered wizard question. Both strings reach the prompt verbatim.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Category string   `json:"category,omitempty"`
}
