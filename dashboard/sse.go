package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// SSEHandler streams pipeline snapshots to connected browsers.
type SSEHandler struct {
	reader   SnapshotSource
	key      string
	interval time.Duration

	clients   map[chan string]bool
	mu        sync.RWMutex
	startOnce sync.Once
	stopChan  chan struct{}
}

func NewSSEHandler(reader SnapshotSource, key string, interval time.Duration) *SSEHandler {
	return &SSEHandler{
		reader:   reader,
		key:      key,
		interval: interval,
		clients:  make(map[chan string]bool),
		stopChan: make(chan struct{}),
	}
}

func (h *SSEHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Accel-Buffering", "no")

	h.startOnce.Do(func() {
		go h.pushLoop()
	})

	clientChan := make(chan string, 100)
	h.addClient(clientChan)
	defer h.removeClient(clientChan)

	if data, ok := h.fetch(); ok {
		select {
		case clientChan <- data:
		default:
		}
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	heartbeat := time.NewTicker(20 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case data := <-clientChan:
			fmt.Fprintf(w, "data: %s\n\n", data)
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		case <-heartbeat.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		case <-r.Context().Done():
			return
		}
	}
}

// fetch loads and re-serializes the current snapshot.
func (h *SSEHandler) fetch() (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snap, err := h.reader.Snapshot(ctx, h.key)
	if err != nil {
		return "", false
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (h *SSEHandler) addClient(clientChan chan string) {
	h.mu.Lock()
	h.clients[clientChan] = true
	h.mu.Unlock()
}

func (h *SSEHandler) removeClient(clientChan chan string) {
	h.mu.Lock()
	delete(h.clients, clientChan)
	close(clientChan)
	h.mu.Unlock()
}

// pushLoop fans the latest snapshot out to every client on each tick.
func (h *SSEHandler) pushLoop() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("SSE panic in pushLoop: %v", r)
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			data, ok := h.fetch()
			if !ok {
				continue
			}
			h.mu.RLock()
			for clientChan := range h.clients {
				select {
				case clientChan <- data:
				default:
					// channel full, skip this push
				}
			}
			h.mu.RUnlock()
		case <-h.stopChan:
			return
		}
	}
}
