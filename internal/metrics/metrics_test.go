package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wireboids/app"
	"wireboids/engine/game"
)

var (
	_ game.Observer    = (*Collector)(nil)
	_ app.DropObserver = (*Collector)(nil)
)

func TestCollectorCountsEvents(t *testing.T) {
	c := New()
	c.GameStarted()
	c.Tick(2*time.Millisecond, 3)
	c.Tick(time.Millisecond, 4)
	c.Generated()
	c.Retired(2)
	c.InputDropped()
	c.GameOver(1234.5)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.gamesStarted))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.ticks))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.active))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.generated))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.retired))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.inputDropped))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.gamesOver))
	assert.Equal(t, 1234.5, testutil.ToFloat64(c.lastDistance))
	assert.Equal(t, 1, testutil.CollectAndCount(c.tickSeconds))
}

func TestHandlerServesPrivateRegistry(t *testing.T) {
	c := New()
	c.Generated()

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "wireboids_obstacles_generated_total 1"))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}

func TestServeStopsWithContext(t *testing.T) {
	c := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Serve(ctx, "127.0.0.1:0", zap.NewNop()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
