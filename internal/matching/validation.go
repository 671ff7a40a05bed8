// internal/matching/validation.go
package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	cerrors "question-service/internal/common/errors"
	"question-service/internal/models"
	"question-service/internal/questions"
)

// requestSchema gates the envelope. A payload that fails it has no reliable
// correlation context to answer against and is discarded upstream.
const requestSchema = `{
	"type": "object",
	"required": ["correlationId", "meta"],
	"properties": {
		"correlationId": {"type": "string", "minLength": 1},
		"meta": {
			"type": "object",
			"required": ["difficulty", "topics"],
			"properties": {
				"difficulty": {"type": "string"},
				"topics": {
					"type": "array",
					"items": {"type": "string"},
					"minItems": 1
				}
			}
		}
	}
}`

var requestSchemaLoader = gojsonschema.NewStringLoader(requestSchema)

// DecodeRequest validates raw bytes against the envelope schema and decodes
// them into a MatchRequest. A MALFORMED_ENVELOPE error means the message must
// be discarded without a reply.
func DecodeRequest(raw []byte) (*MatchRequest, *cerrors.StandardError) {
	result, err := gojsonschema.Validate(requestSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeMalformedEnvelope, "request payload is not valid JSON", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, cerrors.New(cerrors.ErrCodeMalformedEnvelope,
			fmt.Sprintf("request envelope rejected: %s", strings.Join(details, "; ")))
	}

	var req MatchRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeMalformedEnvelope, "request payload could not be decoded", err)
	}
	return &req, nil
}

// ValidateCriteria checks the difficulty against the recognized enum and the
// first topic against the catalog. An INVALID_CRITERIA error is a caller
// error and is reported back as a status=error reply; a STORE_QUERY_FAILED
// error means the catalog itself was unreachable.
func ValidateCriteria(ctx context.Context, catalog questions.Catalog, criteria MatchCriteria) (models.Difficulty, string, *cerrors.StandardError) {
	difficulty := models.Difficulty(criteria.Difficulty)
	if !difficulty.IsValid() {
		return "", "", cerrors.New(cerrors.ErrCodeInvalidCriteria,
			fmt.Sprintf("unrecognized difficulty %q, expected one of Easy, Medium, Hard", criteria.Difficulty))
	}

	// only the first topic is honored; the rest of the list is ignored
	topic := criteria.Topics[0]
	recognized, err := catalog.IsRecognized(ctx, topic)
	if err != nil {
		return "", "", cerrors.Wrap(cerrors.ErrCodeStoreQueryFailed, "topic catalog lookup failed", err)
	}
	if !recognized {
		return "", "", cerrors.New(cerrors.ErrCodeInvalidCriteria,
			fmt.Sprintf("unrecognized topic %q", topic))
	}

	return difficulty, topic, nil
}
