package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/lola-users/internal/platform/logger"
	"github.com/phrazzld/lola-users/internal/platform/lola"
)

func TestNewApplication(t *testing.T) {
	log, _ := logger.NewTestLogger(t)

	app, err := newApplication(testConfig(), log)

	require.NoError(t, err)
	assert.NotNil(t, app.executor)
	assert.NotNil(t, app.userHandler)
	assert.NotNil(t, app.registry)
	assert.NotNil(t, app.telemetry)
}

func TestNewApplication_MissingAPIKey(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	cfg := testConfig()
	cfg.Query.APIKey = ""

	app, err := newApplication(cfg, log)

	assert.Nil(t, app)
	assert.ErrorIs(t, err, lola.ErrMissingAPIKey)
}

func TestStartupMessage(t *testing.T) {
	assert.Equal(t, "Server started at http://localhost:3003", startupMessage(3003))
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	log, logBuf := logger.NewTestLogger(t)
	app, err := newApplication(testConfig(), log)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	logger.AssertLogContains(t, logBuf, "Server shutdown completed")
}
