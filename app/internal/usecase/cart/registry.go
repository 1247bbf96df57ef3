package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domcart "example.com/susan-shop/app/internal/domain/cart"
)

var (
	ErrEmptySession       = errors.New("session id is required")
	ErrStorageUnavailable = errors.New("cart storage unavailable")
)

// SessionKey namespaces the cart key for one session inside a shared backend.
func SessionKey(sessionID string) string {
	return "session:" + sessionID + ":" + domcart.DefaultKey
}

type entry struct {
	store    *Store
	lastUsed time.Time
}

// Registry hands out one Store per session, all backed by the same Storage.
// Stores are cached until they sit idle long enough to be evicted; the
// persisted snapshot is reloaded on the next Open.
type Registry struct {
	mu        sync.Mutex
	storage   domcart.Storage
	opts      []Option
	stores    map[string]*entry
	observers []func(sessionID string, ev domcart.Event)
	now       func() time.Time
}

func NewRegistry(storage domcart.Storage, opts ...Option) *Registry {
	return &Registry{
		storage: storage,
		opts:    opts,
		stores:  make(map[string]*entry),
		now:     time.Now,
	}
}

// Subscribe registers fn for mutations of every cart opened through r.
func (r *Registry) Subscribe(fn func(sessionID string, ev domcart.Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// Open returns the session's store, loading it from storage on first use.
// A store whose backend read failed is not handed out: writing through it
// would overwrite the cart that could not be read.
func (r *Registry) Open(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, ErrEmptySession
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.stores[sessionID]; ok {
		e.lastUsed = r.now()
		return e.store, nil
	}

	opts := append([]Option{}, r.opts...)
	opts = append(opts, WithKey(SessionKey(sessionID)))
	s := NewStore(ctx, r.storage, opts...)
	if err := s.LoadErr(); err != nil && !errors.Is(err, domcart.ErrCorruptSnapshot) {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.Subscribe(func(ev domcart.Event) {
		r.mu.Lock()
		fns := append([]func(string, domcart.Event){}, r.observers...)
		r.mu.Unlock()
		for _, fn := range fns {
			fn(sessionID, ev)
		}
	})

	r.stores[sessionID] = &entry{store: s, lastUsed: r.now()}
	return s, nil
}

// Discard ends a session: the cached store and its snapshot are removed.
func (r *Registry) Discard(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrEmptySession
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.storage.Delete(ctx, SessionKey(sessionID)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	delete(r.stores, sessionID)
	return nil
}

// Evict drops stores not opened for longer than idle and reports how many
// were removed.
func (r *Registry) Evict(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	evicted := 0
	for id, e := range r.stores {
		if e.lastUsed.Before(cutoff) {
			delete(r.stores, id)
			evicted++
		}
	}
	return evicted
}

// Len reports how many stores are cached.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Run evicts idle stores every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration, onEvict func(n int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(idle); n > 0 && onEvict != nil {
				onEvict(n)
			}
		}
	}
}
