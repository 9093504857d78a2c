package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMongoConnector_UnreachableReturnsNil(t *testing.T) {
	c := NewMongoConnector("mongodb://127.0.0.1:1/?directConnection=true", "simplifier", "simplifications", 200*time.Millisecond, time.Hour)
	ctx := context.Background()

	rec := c.Connect(ctx)
	require.Nil(t, rec)
	require.False(t, c.Connected())

	// a second attempt inside the reconnect interval is skipped
	start := time.Now()
	require.Nil(t, c.Connect(ctx))
	require.Less(t, time.Since(start), 100*time.Millisecond)

	require.NoError(t, c.Close(ctx))
}

func TestMongoConnector_EmptyURIIsAbsent(t *testing.T) {
	c := NewMongoConnector("", "simplifier", "simplifications", time.Second, time.Second)
	require.Nil(t, c.Connect(context.Background()))
}

func TestMongoConnector_RetriesAfterInterval(t *testing.T) {
	c := NewMongoConnector("mongodb://unreachable:27017", "simplifier", "simplifications", 50*time.Millisecond, 20*time.Millisecond)
	attempts := 0
	c.dial = func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
		attempts++
		return nil, errors.New("server selection timeout")
	}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.Nil(t, c.Connect(ctx))
		time.Sleep(40 * time.Millisecond)
	}
	require.Equal(t, 3, attempts, "every call past the interval dials again")

	// calls inside the interval are skipped
	require.Nil(t, c.Connect(ctx))
	require.Nil(t, c.Connect(ctx))
	require.Equal(t, 4, attempts)
}

func TestMongoConnector_ZeroIntervalKeepsRetrying(t *testing.T) {
	c := NewMongoConnector("mongodb://unreachable:27017", "simplifier", "simplifications", 50*time.Millisecond, 0)
	require.Equal(t, 30*time.Second, c.attempts.Interval)

	attempts := 0
	c.dial = func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
		attempts++
		return nil, errors.New("server selection timeout")
	}
	// shrink the interval so the test stays fast; a zero Interval would stop after one attempt
	c.attempts.Interval = 10 * time.Millisecond
	for i := 0; i < 3; i++ {
		require.Nil(t, c.Connect(context.Background()))
		time.Sleep(20 * time.Millisecond)
	}
	require.Equal(t, 3, attempts)
}

func TestNewMongoConnector_NonPositiveDurationsFallBack(t *testing.T) {
	c := NewMongoConnector("mongodb://localhost:27017", "simplifier", "simplifications", 0, 0)
	require.Equal(t, 5*time.Second, c.timeout)
	require.Equal(t, 30*time.Second, c.attempts.Interval)

	c = NewMongoConnector("mongodb://localhost:27017", "simplifier", "simplifications", -time.Second, -time.Second)
	require.Equal(t, 5*time.Second, c.timeout)
	require.Equal(t, 30*time.Second, c.attempts.Interval)
}
