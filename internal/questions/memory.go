// internal/questions/memory.go
package questions

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"question-service/internal/models"
)

// MemoryStore is an in-memory Store used by tests and local development. It
// mirrors the Postgres semantics: uniform selection among matches, (nil, nil)
// on no match.
type MemoryStore struct {
	mu        sync.Mutex
	rng       *rand.Rand
	questions []models.StoredQuestion
	failWith  error
	calls     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Add registers a question. Not safe to call concurrently with selection.
func (s *MemoryStore) Add(q models.StoredQuestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append(s.questions, q)
}

// FailWith makes every subsequent selection return err, simulating an
// unreachable store. Pass nil to clear.
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Calls reports how many selections have been attempted.
func (s *MemoryStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *MemoryStore) FindRandomMatch(_ context.Context, difficulty models.Difficulty, topic string) (*models.StoredQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.failWith != nil {
		return nil, s.failWith
	}

	var matches []int
	for i, q := range s.questions {
		if q.Difficulty != difficulty {
			continue
		}
		for _, t := range q.Topics {
			if t == topic {
				matches = append(matches, i)
				break
			}
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}

	picked := s.questions[matches[s.rng.Intn(len(matches))]]
	return &picked, nil
}
