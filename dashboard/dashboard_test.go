package dashboard

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

	"bankreviews/model"
)

type fakeSource struct {
	snap *model.PipelineSnapshot
	err  error
}

func (f *fakeSource) Snapshot(ctx context.Context, key string) (*model.PipelineSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func sampleSnapshot() *model.PipelineSnapshot {
	return &model.PipelineSnapshot{
		Stages: []*model.StageProgress{
			{Stage: "scrape", RunID: "run-1", Total: 400, Processed: 100, Pct: 25},
			{Stage: "analyze", RunID: "run-1", Total: 400, Processed: 0, Pct: 0},
		},
		ScanTime: time.Now().UTC(),
	}
}

func TestGetProgress(t *testing.T) {
	h := NewProgressHandler(&fakeSource{snap: sampleSnapshot()}, "bankreviews")

	rec := httptest.NewRecorder()
	h.GetProgress(rec, httptest.NewRequest(http.MethodGet, "/api/progress", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snap model.PipelineSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	require.Len(t, snap.Stages, 2)
	assert.Equal(t, "scrape", snap.Stages[0].Stage)
	assert.InDelta(t, 25.0, snap.Stages[0].Pct, 0.001)
}

func TestGetProgressMissingSnapshot(t *testing.T) {
	h := NewProgressHandler(&fakeSource{err: errors.New("key not found")}, "bankreviews")

	rec := httptest.NewRecorder()
	h.GetProgress(rec, httptest.NewRequest(http.MethodGet, "/api/progress", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSSEStreamSendsInitialSnapshot(t *testing.T) {
	h := NewSSEHandler(&fakeSource{snap: sampleSnapshot()}, "bankreviews", time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.ServeHTTP(rec, req)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "data: ")
	assert.Contains(t, body, `"scrape"`)
	assert.Contains(t, body, `"run-1"`)
}

func TestServerRoutes(t *testing.T) {
	srv := NewServer("0", &fakeSource{snap: sampleSnapshot()}, "bankreviews", time.Minute)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/progress", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"analyze"`)

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bank Reviews Pipeline")
}
