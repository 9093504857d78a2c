package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectMongo_EmptyURI(t *testing.T) {
	client, err := ConnectMongo(context.Background(), "", time.Second)
	require.Error(t, err)
	require.Nil(t, client)
}

func TestConnectMongo_UnreachableFailsWithinTimeout(t *testing.T) {
	// port 1 on loopback is never a mongod
	start := time.Now()
	client, err := ConnectMongo(context.Background(), "mongodb://127.0.0.1:1/?directConnection=true", 300*time.Millisecond)
	require.Error(t, err)
	require.Nil(t, client)
	require.Less(t, time.Since(start), 5*time.Second)
}
