package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rlKey = "itinerary:rate_limit:generate:10.0.0.1"

func TestRateLimitService_FirstRequestStartsWindow(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	s := NewRateLimitService(rdb)

	mock.ExpectTxPipeline()
	mock.ExpectIncr(rlKey).SetVal(1)
	mock.ExpectTTL(rlKey).SetVal(-1 * time.Second)
	mock.ExpectTxPipelineExec()
	mock.ExpectExpire(rlKey, time.Minute).SetVal(true)

	res, err := s.CheckLimit(context.Background(), "generate:10.0.0.1", 10, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 9, res.Remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimitService_OverLimit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	s := NewRateLimitService(rdb)

	mock.ExpectTxPipeline()
	mock.ExpectIncr(rlKey).SetVal(11)
	mock.ExpectTTL(rlKey).SetVal(42 * time.Second)
	mock.ExpectTxPipelineExec()

	res, err := s.CheckLimit(context.Background(), "generate:10.0.0.1", 10, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, 42*time.Second, res.RetryAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimitService_RedisError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	s := NewRateLimitService(rdb)

	mock.ExpectTxPipeline()
	mock.ExpectIncr(rlKey).SetErr(errors.New("connection refused"))

	_, err := s.CheckLimit(context.Background(), "generate:10.0.0.1", 10, time.Minute)
	assert.Error(t, err)
}
