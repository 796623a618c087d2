// Package cache is the process-wide fortune store: memoized results plus
// per-key in-flight de-duplication.
//
// A Store is constructed once by the composition root and shared by every
// consumer. Entries never expire: a (domain, subject, period) triple is
// treated as immutable for the life of the session, and different subjects
// (guest vs member) are separate partitions.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/metrics"
	"github.com/dmitrijs2005/fortunekeeper/internal/logging"
)

// ErrTypeMismatch is returned when a key is read with a type other than the
// one it was stored with.
var ErrTypeMismatch = errors.New("cache entry type mismatch")

// Fetcher loads the value for one key. It runs at most once per key at a
// time and is handed a context that is not cancelled when callers give up.
type Fetcher[T any] func(ctx context.Context) (T, error)

type Store struct {
	mu       sync.RWMutex
	entries  map[string]any
	inflight singleflight.Group
	recorder metrics.CacheRecorder
	logger   logging.Logger
	now      func() time.Time
}

// joinedHook is called once a caller is attached to the in-flight call for
// a key. It is nil outside tests.
var joinedHook func(s *Store, key string)

type Option func(*Store)

func WithRecorder(r metrics.CacheRecorder) Option {
	return func(s *Store) { s.recorder = r }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		entries:  make(map[string]any),
		recorder: metrics.Nop{},
		logger:   logging.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrFetch returns the memoized value for key, or runs fetch to produce it.
//
// While a fetch for key is in flight, further callers wait on it instead of
// starting their own, and all of them observe the same value or the same
// error. A failed fetch caches nothing, so the next call retries. If ctx is
// cancelled the caller stops waiting, but the fetch still completes and its
// result is cached.
func GetOrFetch[T any](ctx context.Context, s *Store, key Key, fetch Fetcher[T]) (T, error) {
	var zero T
	k := key.String()
	domain := string(key.Domain)

	if v, ok := s.load(k); ok {
		s.recorder.RecordHit(domain)
		s.logger.Debug(ctx, "cache hit", "key", k)
		return cast[T](v)
	}
	s.recorder.RecordMiss(domain)

	ch := s.inflight.DoChan(k, func() (any, error) {
		// A fetch for k may have finished between load and DoChan.
		if v, ok := s.load(k); ok {
			return v, nil
		}

		started := s.now()
		v, err := fetch(context.WithoutCancel(ctx))
		s.recorder.RecordFetch(domain, s.now().Sub(started), err)
		if err != nil {
			s.logger.Warn(ctx, "fetch failed", "key", k, "error", err)
			return nil, err
		}

		s.mu.Lock()
		s.entries[k] = v
		s.mu.Unlock()
		return v, nil
	})
	if hook := joinedHook; hook != nil {
		hook(s, k)
	}

	select {
	case res := <-ch:
		if res.Shared {
			s.recorder.RecordShared(domain)
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return cast[T](res.Val)
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Lookup returns the memoized value without fetching.
func Lookup[T any](s *Store, key Key) (T, bool) {
	var zero T
	v, ok := s.load(key.String())
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

func cast[T any](v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: have %T, want %T", ErrTypeMismatch, v, zero)
	}
	return t, nil
}

func (s *Store) load(k string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[k]
	return v, ok
}

// Len reports the number of memoized entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Forget drops one entry. An in-flight fetch for the key is not affected.
func (s *Store) Forget(key Key) {
	k := key.String()
	s.mu.Lock()
	delete(s.entries, k)
	s.mu.Unlock()
}

// Reset drops every memoized entry.
func (s *Store) Reset() {
	s.mu.Lock()
	s.entries = make(map[string]any)
	s.mu.Unlock()
}
