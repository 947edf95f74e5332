// Package store is the cache-aware data-access layer between the shell and
// the resource services.
//
// The cache lives for the whole process and is only ever written through
// two paths: invalidation after a successful mutation, and a direct set of
// a record's own slot after a single-entity upload. Reads served within an
// entity's freshness window never touch the network; stale reads fetch
// once, retrying a failed fetch a single time. Writes are never retried.
package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HerodesVe/fsr-go/internal/api"
)

// Freshness windows per entity, mirroring the original hooks.
const (
	workflowTTL = 5 * time.Minute
	clientTTL   = 5 * time.Minute
	catalogTTL  = 10 * time.Minute
	ubigeoTTL   = 10 * time.Minute
)

type entry struct {
	value     any
	fetchedAt time.Time
}

// Store owns the process-wide cache and the notifier.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	notify  Notifier
	log     *zap.Logger
}

func New(notify Notifier, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	if notify == nil {
		notify = &LogNotifier{Log: log}
	}
	return &Store{
		entries: make(map[string]entry),
		notify:  notify,
		log:     log,
	}
}

// read serves key from cache while fresh, otherwise fetches exactly once,
// retrying a single time on failure. A failed fetch leaves the cache as it
// was.
func (s *Store) read(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (any, error)) (any, error) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok && time.Since(e.fetchedAt) < ttl {
		s.mu.Unlock()
		return e.value, nil
	}
	s.mu.Unlock()

	value, err := fetch(ctx)
	if err != nil {
		s.log.Debug("fetch failed, retrying once", zap.String("key", key), zap.Error(err))
		value, err = fetch(ctx)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, fetchedAt: time.Now()}
	s.mu.Unlock()
	return value, nil
}

// mutate runs a write operation and applies the cache discipline: on
// success the listed keys are invalidated and one success notification is
// emitted; on failure the cache is untouched and one failure notification
// carries the most specific message available.
func (s *Store) mutate(ctx context.Context, op mutation, fn func(context.Context) (any, error)) (any, error) {
	value, err := fn(ctx)
	if err != nil {
		s.notify.Notify(newNotification("error", failureMessage(err, op.fallback)))
		return nil, err
	}
	s.mu.Lock()
	for _, key := range op.invalidate {
		delete(s.entries, key)
	}
	if op.setKey != "" {
		s.entries[op.setKey] = entry{value: value, fetchedAt: time.Now()}
	}
	s.mu.Unlock()
	s.notify.Notify(newNotification("success", op.success))
	return value, nil
}

// mutation describes the cache effect and the two toast messages of one
// write operation.
type mutation struct {
	invalidate []string
	setKey     string
	success    string
	fallback   string
}

// Reset drops every cached entry. Called on logout so the next operator
// never sees the previous session's data.
func (s *Store) Reset() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// failureMessage picks the most specific message: the backend's detail,
// else the transport error, else the operation's fixed fallback phrase.
func failureMessage(err error, fallback string) string {
	if detail := api.Detail(err); detail != "" {
		return detail
	}
	if _, ok := err.(*api.Error); ok {
		// Backend answered without a message.
		return fallback
	}
	if err != nil {
		return err.Error()
	}
	return fallback
}
