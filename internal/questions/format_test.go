package questions

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"question-service/internal/models"
)

func TestFormatQuestion_StripsStorageFields(t *testing.T) {
	stored := &models.StoredQuestion{
		ID:          "3d9bd2a7-internal-id",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Title:       "Two Sum",
		Difficulty:  models.DifficultyEasy,
		Topics:      []string{"Arrays", "Hash Table"},
		Statement:   "Find two numbers that add up to the target.",
		Constraints: []string{"2 <= nums.length <= 10^4"},
		Examples:    []models.Example{{Input: "[2,7,11,15], 9", Output: "[0,1]"}},
		EntryPoint:  "twoSum",
		TestCases:   []models.TestCase{{Input: "[2,7,11,15], 9", Expected: "[0,1]"}},
		Signature: models.Signature{
			Name:       "twoSum",
			Parameters: []models.Parameter{{Name: "nums", Type: "int[]"}, {Name: "target", Type: "int"}},
			ReturnType: "int[]",
		},
	}

	record := FormatQuestion(stored)
	require.NotNil(t, record)

	assert.Equal(t, stored.Title, record.Title)
	assert.Equal(t, stored.Difficulty, record.Difficulty)
	assert.Equal(t, stored.Topics, record.Topics)
	assert.Equal(t, stored.Statement, record.Statement)
	assert.Equal(t, stored.Constraints, record.Constraints)
	assert.Equal(t, stored.Examples, record.Examples)
	assert.Equal(t, stored.EntryPoint, record.EntryPoint)
	assert.Equal(t, stored.TestCases, record.TestCases)
	assert.Equal(t, stored.Signature, record.Signature)

	// the serialized form must never leak the storage id
	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.NotContains(t, string(data), stored.ID)
}

func TestFormatQuestion_Nil(t *testing.T) {
	assert.Nil(t, FormatQuestion(nil))
}
