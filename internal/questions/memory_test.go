package questions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"question-service/internal/models"
)

func memQuestion(title string, difficulty models.Difficulty, topics ...string) models.StoredQuestion {
	return models.StoredQuestion{ID: "id-" + title, Title: title, Difficulty: difficulty, Topics: topics}
}

func TestMemoryStore_FiltersByDifficultyAndTopic(t *testing.T) {
	store := NewMemoryStore()
	store.Add(memQuestion("A", models.DifficultyEasy, "Graphs"))
	store.Add(memQuestion("B", models.DifficultyMedium, "Graphs"))
	store.Add(memQuestion("C", models.DifficultyMedium, "Strings"))

	q, err := store.FindRandomMatch(context.Background(), models.DifficultyMedium, "Graphs")
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "B", q.Title)
}

func TestMemoryStore_TopicSetMembership(t *testing.T) {
	store := NewMemoryStore()
	store.Add(memQuestion("Multi", models.DifficultyHard, "Graphs", "Trees", "Dynamic Programming"))

	for _, topic := range []string{"Graphs", "Trees", "Dynamic Programming"} {
		q, err := store.FindRandomMatch(context.Background(), models.DifficultyHard, topic)
		require.NoError(t, err)
		require.NotNil(t, q, "topic %s should match", topic)
	}

	q, err := store.FindRandomMatch(context.Background(), models.DifficultyHard, "Sorting")
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestMemoryStore_NoMatchIsNotAnError(t *testing.T) {
	store := NewMemoryStore()

	q, err := store.FindRandomMatch(context.Background(), models.DifficultyEasy, "Graphs")
	assert.NoError(t, err)
	assert.Nil(t, q)
}

func TestMemoryStore_FailWith(t *testing.T) {
	store := NewMemoryStore()
	store.Add(memQuestion("A", models.DifficultyEasy, "Graphs"))
	store.FailWith(errors.New("store down"))

	q, err := store.FindRandomMatch(context.Background(), models.DifficultyEasy, "Graphs")
	assert.Error(t, err)
	assert.Nil(t, q)
	assert.Equal(t, 1, store.Calls())
}

func TestMemoryStore_UniformAcrossMatches(t *testing.T) {
	store := NewMemoryStore()
	store.Add(memQuestion("Q1", models.DifficultyMedium, "Graphs"))
	store.Add(memQuestion("Q2", models.DifficultyMedium, "Graphs"))
	store.Add(memQuestion("Q3", models.DifficultyMedium, "Graphs"))
	store.Add(memQuestion("Other", models.DifficultyHard, "Graphs"))

	const runs = 3000
	counts := map[string]int{}
	for i := 0; i < runs; i++ {
		q, err := store.FindRandomMatch(context.Background(), models.DifficultyMedium, "Graphs")
		require.NoError(t, err)
		require.NotNil(t, q)
		counts[q.Title]++
	}

	assert.Zero(t, counts["Other"])
	for _, title := range []string{"Q1", "Q2", "Q3"} {
		assert.InDelta(t, runs/3, counts[title], 150, "distribution not uniform: %v", counts)
	}
}
