package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcreative/giftmon/pkg/monitor"
	"github.com/rcreative/giftmon/pkg/scheduler"
	"github.com/rcreative/giftmon/server/mocks"
)

func testServer(t *testing.T, mon *mocks.MonitorMock, sched *mocks.SchedulerMock, seen *mocks.SeenCounterMock) *httptest.Server {
	t.Helper()

	srv := New(Config{
		Listen:   ":0",
		Timeout:  5 * time.Second,
		Interval: time.Minute,
		Version:  "test",
	}, mon, sched, seen)

	ts := httptest.NewServer(srv.router)
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_StatusHandler(t *testing.T) {
	mon := &mocks.MonitorMock{
		StatsFunc: func() monitor.Stats {
			return monitor.Stats{Cycles: 3, Delivered: 12, LastRun: time.Now()}
		},
	}
	sched := &mocks.SchedulerMock{
		StateFunc: func() scheduler.State { return scheduler.StateRunning },
	}
	seen := &mocks.SeenCounterMock{
		CountFunc: func(ctx context.Context) (int64, error) { return 12, nil },
	}

	ts := testServer(t, mon, sched, seen)

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "test", status["version"])
	assert.Equal(t, "running", status["scheduler"])
	assert.InDelta(t, 12, status["seen"], 0.01)
}

func TestServer_StatusHandlerCountError(t *testing.T) {
	mon := &mocks.MonitorMock{
		StatsFunc: func() monitor.Stats { return monitor.Stats{} },
	}
	sched := &mocks.SchedulerMock{
		StateFunc: func() scheduler.State { return scheduler.StateIdle },
	}
	seen := &mocks.SeenCounterMock{
		CountFunc: func(ctx context.Context) (int64, error) { return 0, errors.New("db closed") },
	}

	ts := testServer(t, mon, sched, seen)

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	// count failure degrades the response, it does not fail it
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	_, hasSeen := status["seen"]
	assert.False(t, hasSeen)
}

func TestServer_FetchHandler(t *testing.T) {
	mon := &mocks.MonitorMock{
		FetchFunc: func(ctx context.Context) error { return nil },
	}
	sched := &mocks.SchedulerMock{}
	seen := &mocks.SeenCounterMock{}

	ts := testServer(t, mon, sched, seen)

	resp, err := http.Post(ts.URL+"/api/v1/fetch", "application/json", http.NoBody)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, mon.FetchCalls(), 1)
}

func TestServer_FetchHandlerError(t *testing.T) {
	mon := &mocks.MonitorMock{
		FetchFunc: func(ctx context.Context) error { return errors.New("upstream down") },
	}
	sched := &mocks.SchedulerMock{}
	seen := &mocks.SeenCounterMock{}

	ts := testServer(t, mon, sched, seen)

	resp, err := http.Post(ts.URL+"/api/v1/fetch", "application/json", http.NoBody)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "upstream down")
}

func TestServer_StartStopHandlers(t *testing.T) {
	mon := &mocks.MonitorMock{}
	sched := &mocks.SchedulerMock{
		StartFunc: func(ctx context.Context, interval time.Duration) {},
		StopFunc:  func() {},
	}
	seen := &mocks.SeenCounterMock{}

	ts := testServer(t, mon, sched, seen)

	resp, err := http.Post(ts.URL+"/api/v1/start", "application/json", http.NoBody)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, sched.StartCalls(), 1)
	assert.Equal(t, time.Minute, sched.StartCalls()[0].Interval)

	resp, err = http.Post(ts.URL+"/api/v1/stop", "application/json", http.NoBody)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, sched.StopCalls(), 1)
}

func TestServer_Ping(t *testing.T) {
	mon := &mocks.MonitorMock{}
	sched := &mocks.SchedulerMock{}
	seen := &mocks.SeenCounterMock{}

	ts := testServer(t, mon, sched, seen)

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Run(t *testing.T) {
	mon := &mocks.MonitorMock{}
	sched := &mocks.SchedulerMock{}
	seen := &mocks.SeenCounterMock{}

	srv := New(Config{Listen: "127.0.0.1:0", Timeout: time.Second}, mon, sched, seen)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// Run returns cleanly on ctx cancellation
	err := srv.Run(ctx)
	require.NoError(t, err)
}
