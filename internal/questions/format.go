// internal/questions/format.go
package questions

import "question-service/internal/models"

// FormatQuestion strips storage-owned fields down to the public record shape.
// Shared between the CRUD response path and the match-reply path so both
// surfaces serialize questions identically.
func FormatQuestion(q *models.StoredQuestion) *models.QuestionRecord {
	if q == nil {
		return nil
	}
	return &models.QuestionRecord{
		Title:       q.Title,
		Difficulty:  q.Difficulty,
		Topics:      q.Topics,
		Statement:   q.Statement,
		Constraints: q.Constraints,
		Examples:    q.Examples,
		EntryPoint:  q.EntryPoint,
		TestCases:   q.TestCases,
		Signature:   q.Signature,
	}
}
