package questions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"question-service/internal/common/logger"
)

type fakeTopicLister struct {
	topics []string
	err    error
	calls  int
}

func (f *fakeTopicLister) ListTopics(context.Context) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.topics, nil
}

func newMiniredisClient(t *testing.T) *redis.Client {
	t.Helper()
	srv := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: srv.Addr()})
}

func TestCachedCatalog_ColdCacheFallsBackToDatabase(t *testing.T) {
	lister := &fakeTopicLister{topics: []string{"Graphs", "Strings", "Trees"}}
	catalog := NewCachedCatalog(lister, newMiniredisClient(t), 5*time.Minute, logger.NewTestLogger(t))

	recognized, err := catalog.IsRecognized(context.Background(), "Graphs")
	require.NoError(t, err)
	assert.True(t, recognized)
	assert.Equal(t, 1, lister.calls)
}

func TestCachedCatalog_SecondLookupServedFromCache(t *testing.T) {
	lister := &fakeTopicLister{topics: []string{"Graphs"}}
	catalog := NewCachedCatalog(lister, newMiniredisClient(t), 5*time.Minute, logger.NewTestLogger(t))

	for i := 0; i < 3; i++ {
		recognized, err := catalog.IsRecognized(context.Background(), "Graphs")
		require.NoError(t, err)
		assert.True(t, recognized)
	}
	assert.Equal(t, 1, lister.calls, "subsequent lookups must hit the cache")
}

func TestCachedCatalog_UnrecognizedTopic(t *testing.T) {
	lister := &fakeTopicLister{topics: []string{"Graphs"}}
	catalog := NewCachedCatalog(lister, newMiniredisClient(t), 5*time.Minute, logger.NewTestLogger(t))

	recognized, err := catalog.IsRecognized(context.Background(), "Quantum Sorting")
	require.NoError(t, err)
	assert.False(t, recognized)
}

func TestCachedCatalog_RedisDownFallsBackToDatabase(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet(catalogCacheKey).SetErr(errors.New("connection refused"))
	mock.Regexp().ExpectSet(catalogCacheKey, `.*`, 5*time.Minute).SetErr(errors.New("connection refused"))

	lister := &fakeTopicLister{topics: []string{"Graphs"}}
	catalog := NewCachedCatalog(lister, client, 5*time.Minute, logger.NewTestLogger(t))

	// cache failures are absorbed; the database still answers
	recognized, err := catalog.IsRecognized(context.Background(), "Graphs")
	require.NoError(t, err)
	assert.True(t, recognized)
	assert.Equal(t, 1, lister.calls)
}

func TestCachedCatalog_DatabaseFaultSurfaces(t *testing.T) {
	lister := &fakeTopicLister{err: errors.New("relation topics does not exist")}
	catalog := NewCachedCatalog(lister, newMiniredisClient(t), 5*time.Minute, logger.NewTestLogger(t))

	_, err := catalog.IsRecognized(context.Background(), "Graphs")
	assert.Error(t, err)
}

func TestStaticCatalog(t *testing.T) {
	catalog := StaticCatalog{"Graphs", "Trees"}

	recognized, err := catalog.IsRecognized(context.Background(), "Trees")
	require.NoError(t, err)
	assert.True(t, recognized)

	recognized, err = catalog.IsRecognized(context.Background(), "Sorting")
	require.NoError(t, err)
	assert.False(t, recognized)
}
