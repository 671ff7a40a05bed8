package questions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"question-service/internal/common/logger"
	"question-service/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

const selectPattern = `FROM questions\s+WHERE difficulty = \$1 AND \$2 = ANY\(topics\)\s+ORDER BY RANDOM\(\)\s+LIMIT 1`

var questionColumns = []string{
	"id", "title", "difficulty", "topics", "statement", "constraints",
	"examples", "entry_point", "test_cases", "signature", "created_at", "updated_at",
}

func questionRow(mock sqlmock.Sqlmock) *sqlmock.Rows {
	return mock.NewRows(questionColumns).AddRow(
		"9f2c1a60-1111-4222-8333-444455556666",
		"Shortest Path",
		"Medium",
		[]byte("{Graphs,BFS}"),
		"Given a graph, find the shortest path.",
		[]byte(`{"1 <= n <= 10^5"}`),
		[]byte(`[{"input":"n=3","output":"2"}]`),
		"shortestPath",
		[]byte(`[{"input":"n=3","expected":"2"}]`),
		[]byte(`{"name":"shortestPath","parameters":[{"name":"n","type":"int"}],"returnType":"int"}`),
		time.Now(),
		time.Now(),
	)
}

func newTestStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db, logger.NewTestLogger(t)), mock
}

// ==========================
// FindRandomMatch Tests
// ==========================

func TestPostgresStore_FindRandomMatch_Success(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(selectPattern).
		WithArgs("Medium", "Graphs").
		WillReturnRows(questionRow(mock))

	q, err := store.FindRandomMatch(context.Background(), models.DifficultyMedium, "Graphs")
	require.NoError(t, err)
	require.NotNil(t, q)

	assert.Equal(t, "9f2c1a60-1111-4222-8333-444455556666", q.ID)
	assert.Equal(t, "Shortest Path", q.Title)
	assert.Equal(t, models.DifficultyMedium, q.Difficulty)
	assert.Equal(t, []string{"Graphs", "BFS"}, q.Topics)
	assert.Equal(t, "shortestPath", q.EntryPoint)
	require.Len(t, q.Examples, 1)
	assert.Equal(t, "n=3", q.Examples[0].Input)
	require.Len(t, q.TestCases, 1)
	assert.Equal(t, "2", q.TestCases[0].Expected)
	assert.Equal(t, "shortestPath", q.Signature.Name)
	assert.Equal(t, "int", q.Signature.ReturnType)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindRandomMatch_NoMatch(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(selectPattern).
		WithArgs("Hard", "Trees").
		WillReturnRows(mock.NewRows(questionColumns))

	q, err := store.FindRandomMatch(context.Background(), models.DifficultyHard, "Trees")
	assert.NoError(t, err, "no match is a normal outcome, not an error")
	assert.Nil(t, q)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindRandomMatch_QueryError(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(selectPattern).
		WithArgs("Easy", "Strings").
		WillReturnError(errors.New("connection reset by peer"))

	q, err := store.FindRandomMatch(context.Background(), models.DifficultyEasy, "Strings")
	assert.Error(t, err)
	assert.Nil(t, q)
}

func TestPostgresStore_FindRandomMatch_CorruptPayload(t *testing.T) {
	store, mock := newTestStore(t)

	rows := mock.NewRows(questionColumns).AddRow(
		"id-1", "Broken", "Easy", []byte("{Strings}"), "stmt", []byte("{}"),
		[]byte(`not-json`), "fn", []byte(`[]`), []byte(`{}`), time.Now(), time.Now(),
	)
	mock.ExpectQuery(selectPattern).
		WithArgs("Easy", "Strings").
		WillReturnRows(rows)

	q, err := store.FindRandomMatch(context.Background(), models.DifficultyEasy, "Strings")
	assert.Error(t, err)
	assert.Nil(t, q)
}

// ==========================
// ListTopics Tests
// ==========================

func TestPostgresStore_ListTopics(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT name FROM topics ORDER BY name`).
		WillReturnRows(mock.NewRows([]string{"name"}).
			AddRow("Dynamic Programming").
			AddRow("Graphs").
			AddRow("Strings"))

	topics, err := store.ListTopics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Dynamic Programming", "Graphs", "Strings"}, topics)
}

func TestPostgresStore_ListTopics_Error(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT name FROM topics ORDER BY name`).
		WillReturnError(errors.New("relation does not exist"))

	topics, err := store.ListTopics(context.Background())
	assert.Error(t, err)
	assert.Nil(t, topics)
}
