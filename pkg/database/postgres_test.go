package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/fileflow-portal-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 6543, User: "u", Password: "p", Name: "postgres", SSLMode: "require"})
	assert.Equal(t, "host=db port=6543 user=u password=p dbname=postgres sslmode=require", dsn)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	raw, err := migrationsFS.ReadFile("migrations/" + entries[0].Name())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "-- +goose Up")
	assert.Contains(t, string(raw), "CREATE TABLE IF NOT EXISTS uploads")
}

type flakyPinger struct {
	failures int
	calls    int
}

func (p *flakyPinger) PingContext(ctx context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitRetriesUntilReachable(t *testing.T) {
	p := &flakyPinger{failures: 2}
	require.NoError(t, Wait(context.Background(), p, 3, time.Millisecond))
	assert.Equal(t, 3, p.calls)
}

func TestWaitGivesUp(t *testing.T) {
	p := &flakyPinger{failures: 10}
	err := Wait(context.Background(), p, 2, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 2, p.calls)
}
