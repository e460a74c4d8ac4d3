package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectMongoRejectsBadURI(t *testing.T) {
	_, err := ConnectMongo(context.Background(), "", time.Second)
	require.ErrorContains(t, err, "empty connection string")

	_, err = ConnectMongo(context.Background(), "postgres://localhost:5432", time.Second)
	require.ErrorContains(t, err, "mongo connect")
}
