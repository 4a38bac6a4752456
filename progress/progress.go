// Package progress publishes pipeline stage progress to Redis so the
// dashboard can watch long scrape and analyze runs. Publishing is
// optional: with no Redis host configured every call is a no-op.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"bankreviews/config"
	"bankreviews/model"
)

// Publisher uploads the pipeline snapshot under a single Redis key.
type Publisher struct {
	rdb *redis.Client
	key string

	mu     sync.Mutex
	stages map[string]*model.StageProgress
	order  []string
}

// NewPublisher connects to Redis. An empty RedisHost yields a disabled
// publisher whose methods succeed without doing anything.
func NewPublisher(cfg *config.Config) (*Publisher, error) {
	p := &Publisher{stages: make(map[string]*model.StageProgress)}
	if cfg.RedisHost == "" {
		return p, nil
	}

	addr := fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort)
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	p.rdb = rdb
	p.key = cfg.RedisKey
	return p, nil
}

// Enabled reports whether progress actually reaches Redis.
func (p *Publisher) Enabled() bool { return p.rdb != nil }

// Update records one stage's progress and uploads the full snapshot.
func (p *Publisher) Update(ctx context.Context, stage, runID string, processed, total int) error {
	snap := p.record(stage, runID, processed, total)
	if p.rdb == nil {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return p.rdb.Set(ctx, p.key, string(data), 0).Err()
}

// record folds one stage update into the snapshot, keeping stages in
// first-seen order.
func (p *Publisher) record(stage, runID string, processed, total int) *model.PipelineSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	sp, ok := p.stages[stage]
	if !ok {
		sp = &model.StageProgress{Stage: stage}
		p.stages[stage] = sp
		p.order = append(p.order, stage)
	}
	sp.RunID = runID
	sp.Total = total
	sp.Processed = processed
	if total > 0 {
		sp.Pct = float64(processed) * 100 / float64(total)
	} else {
		sp.Pct = 0
	}
	sp.UpdatedAt = time.Now().UTC()

	snap := &model.PipelineSnapshot{ScanTime: time.Now().UTC()}
	for _, name := range p.order {
		snap.Stages = append(snap.Stages, p.stages[name])
	}
	return snap
}

// Close releases the Redis connection.
func (p *Publisher) Close() error {
	if p.rdb == nil {
		return nil
	}
	return p.rdb.Close()
}

// Reader fetches published snapshots; the dashboard uses it.
type Reader struct {
	rdb *redis.Client
}

// NewReader connects to Redis for snapshot reads. Unlike NewPublisher a
// Redis host is required here.
func NewReader(cfg *config.Config) (*Reader, error) {
	host := cfg.RedisHost
	if host == "" {
		host = "localhost"
	}
	addr := fmt.Sprintf("%s:%s", host, cfg.RedisPort)
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	return &Reader{rdb: rdb}, nil
}

// Snapshot fetches and decodes the snapshot stored under key.
func (r *Reader) Snapshot(ctx context.Context, key string) (*model.PipelineSnapshot, error) {
	val, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	var snap model.PipelineSnapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *Reader) Close() error { return r.rdb.Close() }
