// internal/questions/store.go
package questions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"question-service/internal/common/logger"
	"question-service/internal/models"
)

// Store is the query capability the matching path consumes. FindRandomMatch
// returns (nil, nil) when no question satisfies the criteria; a non-nil error
// always means an infrastructure fault, never a business outcome.
type Store interface {
	// FindRandomMatch returns one question matching the difficulty whose topic
	// set contains topic, chosen uniformly at random among all matches.
	FindRandomMatch(ctx context.Context, difficulty models.Difficulty, topic string) (*models.StoredQuestion, error)
}

const findRandomMatchQuery = `
SELECT id, title, difficulty, topics, statement, constraints, examples, entry_point, test_cases, signature, created_at, updated_at
FROM questions
WHERE difficulty = $1 AND $2 = ANY(topics)
ORDER BY RANDOM()
LIMIT 1`

const listTopicsQuery = `SELECT name FROM topics ORDER BY name`

// PostgresStore queries the questions database. Uniform random selection is
// pushed down into SQL so candidates are never loaded into the service.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "question-store"}),
	}
}

func (s *PostgresStore) FindRandomMatch(ctx context.Context, difficulty models.Difficulty, topic string) (*models.StoredQuestion, error) {
	row := s.db.QueryRowContext(ctx, findRandomMatchQuery, string(difficulty), topic)

	var (
		q           models.StoredQuestion
		topics      pq.StringArray
		constraints pq.StringArray
		examples    []byte
		testCases   []byte
		signature   []byte
	)
	err := row.Scan(
		&q.ID, &q.Title, &q.Difficulty, &topics, &q.Statement, &constraints,
		&examples, &q.EntryPoint, &testCases, &signature, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find random match: %w", err)
	}

	q.Topics = topics
	q.Constraints = constraints
	if err := json.Unmarshal(examples, &q.Examples); err != nil {
		return nil, fmt.Errorf("decode examples for question %s: %w", q.ID, err)
	}
	if err := json.Unmarshal(testCases, &q.TestCases); err != nil {
		return nil, fmt.Errorf("decode test cases for question %s: %w", q.ID, err)
	}
	if err := json.Unmarshal(signature, &q.Signature); err != nil {
		return nil, fmt.Errorf("decode signature for question %s: %w", q.ID, err)
	}

	return &q, nil
}

// ListTopics returns the recognized topic labels from the topics table.
func (s *PostgresStore) ListTopics(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, listTopicsQuery)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}
	return topics, nil
}
