// internal/models/question.go
package models

import "time"

// Difficulty is the question difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the recognized difficulty values.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// IsValid reports whether d is one of the recognized difficulty values.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Example is a worked input/output pair shown with the problem statement.
type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// TestCase is a single input/expected-output check for a submission.
type TestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// Parameter describes one argument of the expected solution function.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Signature describes the expected solution function.
type Signature struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
	ReturnType string      `json:"returnType"`
}

// QuestionRecord is the public shape of a question. It is what crosses the
// bus in a match reply and what the CRUD surface serializes; internal storage
// identifiers never appear here.
type QuestionRecord struct {
	Title       string     `json:"title"`
	Difficulty  Difficulty `json:"difficulty"`
	Topics      []string   `json:"topics"`
	Statement   string     `json:"statement"`
	Constraints []string   `json:"constraints"`
	Examples    []Example  `json:"examples"`
	EntryPoint  string     `json:"entryPoint"`
	TestCases   []TestCase `json:"testCases"`
	Signature   Signature  `json:"signature"`
}

// StoredQuestion is a question row as owned by the store, including the
// fields that must be stripped before the record leaves the service.
type StoredQuestion struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	Title       string
	Difficulty  Difficulty
	Topics      []string
	Statement   string
	Constraints []string
	Examples    []Example
	EntryPoint  string
	TestCases   []TestCase
	Signature   Signature
}
