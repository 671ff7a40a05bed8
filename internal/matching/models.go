// internal/matching/models.go
package matching

import "question-service/internal/models"

// Reply status values. The caller-visible contract is binary by design.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MatchCriteria is the filter carried by a match request. Only the first
// topic participates in selection; the full list is decoded for logging.
type MatchCriteria struct {
	Difficulty string   `json:"difficulty"`
	Topics     []string `json:"topics"`
}

// MatchRequest is the inbound payload on the matching-requests queue. The
// correlation id is opaque: routed back verbatim, never interpreted.
type MatchRequest struct {
	CorrelationID string        `json:"correlationId"`
	Meta          MatchCriteria `json:"meta"`
}

// MatchReply is the outbound payload on the question-replies exchange.
// Exactly one is published per request that passes envelope decoding.
type MatchReply struct {
	CorrelationID string                 `json:"correlationId"`
	Status        string                 `json:"status"`
	Data          *models.QuestionRecord `json:"data"`
	Message       string                 `json:"message"`
}
