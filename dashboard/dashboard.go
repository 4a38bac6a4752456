// Package dashboard serves the pipeline progress UI. Snapshots come from
// Redis where the pipeline stages publish them; the browser gets them
// over JSON polling or SSE.
package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/rs/cors"

	"bankreviews/model"
)

//go:embed static
var staticFS embed.FS

// SnapshotSource provides the latest pipeline snapshot. progress.Reader
// implements it against Redis.
type SnapshotSource interface {
	Snapshot(ctx context.Context, key string) (*model.PipelineSnapshot, error)
}

// ProgressHandler answers one-shot snapshot requests.
type ProgressHandler struct {
	reader SnapshotSource
	key    string
}

func NewProgressHandler(reader SnapshotSource, key string) *ProgressHandler {
	return &ProgressHandler{reader: reader, key: key}
}

// GetProgress returns the latest pipeline snapshot as JSON.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	snap, err := h.reader.Snapshot(ctx, h.key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// NewServer wires the static UI, the JSON API and the SSE stream behind
// permissive CORS.
func NewServer(port string, reader SnapshotSource, key string, interval time.Duration) *http.Server {
	progressHandler := NewProgressHandler(reader, key)
	sseHandler := NewSSEHandler(reader, key, interval)

	mux := http.NewServeMux()

	static, err := fs.Sub(staticFS, "static")
	if err == nil {
		mux.Handle("/", http.FileServer(http.FS(static)))
	}
	mux.HandleFunc("/api/progress", progressHandler.GetProgress)
	mux.Handle("/api/stream", sseHandler)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	return &http.Server{
		Addr:         ":" + port,
		Handler:      c.Handler(mux),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
