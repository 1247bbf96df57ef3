package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/shopspring/decimal"

	domcart "example.com/susan-shop/app/internal/domain/cart"
	domproduct "example.com/susan-shop/app/internal/domain/product"
)

type Option func(*Store)

// WithKey overrides the storage key the snapshot is persisted under.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStockLimit rejects adds and updates that would take a line above the
// stock recorded on its variant snapshot.
func WithStockLimit() Option {
	return func(s *Store) {
		s.stockLimit = true
	}
}

type observer struct {
	id int
	fn func(domcart.Event)
}

// Store owns the shopping cart lines and mirrors them into Storage after
// every mutation. A mutation either persists the whole cart or leaves the
// in-memory state untouched.
type Store struct {
	mu         sync.Mutex
	storage    domcart.Storage
	key        string
	logger     *slog.Logger
	stockLimit bool

	lines   []domcart.Line
	loadErr error

	observers  []observer
	observerID int
}

func NewStore(ctx context.Context, storage domcart.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     domcart.DefaultKey,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	lines, err := Load(ctx, storage, s.key)
	if err != nil {
		s.logger.Warn("cart snapshot unreadable, starting empty", "key", s.key, "err", err)
	}
	s.lines = lines
	s.loadErr = err
	return s
}

// Load reads the snapshot stored under key. It always returns a usable
// slice: an absent key yields an empty cart and a nil error, while an
// unreadable or malformed value yields an empty cart together with the
// reason.
func Load(ctx context.Context, storage domcart.Storage, key string) ([]domcart.Line, error) {
	raw, err := storage.Get(ctx, key)
	if errors.Is(err, domcart.ErrSnapshotNotFound) {
		return []domcart.Line{}, nil
	}
	if err != nil {
		return []domcart.Line{}, fmt.Errorf("read cart snapshot: %w", err)
	}
	if len(raw) == 0 {
		return []domcart.Line{}, nil
	}

	var decoded []domcart.Line
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return []domcart.Line{}, fmt.Errorf("%w: %v", domcart.ErrCorruptSnapshot, err)
	}
	return normalize(decoded), nil
}

// normalize restores the one-line-per-key, quantity >= 1 invariant on
// snapshots written by other clients.
func normalize(lines []domcart.Line) []domcart.Line {
	result := make([]domcart.Line, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if idx := indexOf(result, l.Key()); idx >= 0 {
			if l.Quantity > math.MaxInt64-result[idx].Quantity {
				result[idx].Quantity = math.MaxInt64
			} else {
				result[idx].Quantity += l.Quantity
			}
			continue
		}
		result = append(result, l)
	}
	return result
}

// LoadErr returns the reason the snapshot could not be read at
// construction, or nil when the cart loaded cleanly.
func (s *Store) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

func (s *Store) AddItem(ctx context.Context, p domproduct.Product, v domproduct.Variant, quantity int64) (domcart.AddResult, error) {
	if quantity <= 0 {
		return domcart.AddResult{}, domcart.ErrInvalidQuantity
	}

	key := domcart.Key{ProductID: p.ID, VariantID: v.ID}

	s.mu.Lock()
	// the whole cart count must stay representable, which bounds every line too
	if quantity > math.MaxInt64-domcart.ItemCount(s.lines) {
		s.mu.Unlock()
		return domcart.AddResult{}, domcart.ErrInvalidQuantity
	}
	next := cloneLines(s.lines)
	idx := indexOf(next, key)
	if idx >= 0 {
		next[idx].Quantity += quantity
	} else {
		next = append(next, domcart.Line{Product: p, Variant: v, Quantity: quantity})
		idx = len(next) - 1
	}
	if s.stockLimit && next[idx].Quantity > v.Quantity {
		s.mu.Unlock()
		return domcart.AddResult{}, domproduct.ErrOutOfStock
	}
	ev, notify, err := s.persistLocked(ctx, domcart.EventAdded, key, next)
	s.mu.Unlock()
	if err != nil {
		return domcart.AddResult{}, err
	}

	notify(ev)
	return domcart.AddResult{Success: true, Message: domcart.AddedMessage}, nil
}

// UpdateQuantity sets the absolute quantity of a line. A quantity of zero
// or less removes the line; a missing line is left alone.
func (s *Store) UpdateQuantity(ctx context.Context, productID, variantID string, quantity int64) error {
	key := domcart.Key{ProductID: productID, VariantID: variantID}

	s.mu.Lock()
	idx := indexOf(s.lines, key)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	if quantity <= 0 {
		s.mu.Unlock()
		return s.RemoveItem(ctx, productID, variantID)
	}
	if quantity > math.MaxInt64-(domcart.ItemCount(s.lines)-s.lines[idx].Quantity) {
		s.mu.Unlock()
		return domcart.ErrInvalidQuantity
	}
	if s.stockLimit && quantity > s.lines[idx].Variant.Quantity {
		s.mu.Unlock()
		return domproduct.ErrOutOfStock
	}

	next := cloneLines(s.lines)
	next[idx].Quantity = quantity
	ev, notify, err := s.persistLocked(ctx, domcart.EventUpdated, key, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	notify(ev)
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, productID, variantID string) error {
	key := domcart.Key{ProductID: productID, VariantID: variantID}

	s.mu.Lock()
	next := make([]domcart.Line, 0, len(s.lines))
	for _, l := range s.lines {
		if l.Key() != key {
			next = append(next, l)
		}
	}
	ev, notify, err := s.persistLocked(ctx, domcart.EventRemoved, key, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	notify(ev)
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	ev, notify, err := s.persistLocked(ctx, domcart.EventCleared, domcart.Key{}, []domcart.Line{})
	s.mu.Unlock()
	if err != nil {
		return err
	}

	notify(ev)
	return nil
}

func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domcart.Total(s.lines)
}

func (s *Store) ItemCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domcart.ItemCount(s.lines)
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []domcart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.lines)
}

func (s *Store) Line(productID, variantID string) (domcart.Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOf(s.lines, domcart.Key{ProductID: productID, VariantID: variantID})
	if idx < 0 {
		return domcart.Line{}, false
	}
	return s.lines[idx], true
}

// Subscribe registers fn to be called after every persisted mutation. The
// returned func removes the subscription.
func (s *Store) Subscribe(fn func(domcart.Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observerID++
	id := s.observerID
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// persistLocked writes next as the whole cart and only then swaps it in.
// The caller must hold s.mu; the returned func delivers the event and must
// be called after the lock is released.
func (s *Store) persistLocked(ctx context.Context, kind domcart.EventKind, key domcart.Key, next []domcart.Line) (domcart.Event, func(domcart.Event), error) {
	raw, err := json.Marshal(next)
	if err != nil {
		return domcart.Event{}, nil, fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		return domcart.Event{}, nil, fmt.Errorf("persist cart: %w", err)
	}
	s.lines = next

	ev := domcart.Event{
		Kind:  kind,
		Key:   key,
		Lines: cloneLines(next),
		Count: domcart.ItemCount(next),
		Total: domcart.Total(next),
	}

	fns := make([]func(domcart.Event), 0, len(s.observers))
	for _, o := range s.observers {
		fns = append(fns, o.fn)
	}
	return ev, func(ev domcart.Event) {
		for _, fn := range fns {
			fn(ev)
		}
	}, nil
}

func indexOf(lines []domcart.Line, key domcart.Key) int {
	for i, l := range lines {
		if l.Key() == key {
			return i
		}
	}
	return -1
}

func cloneLines(lines []domcart.Line) []domcart.Line {
	result := make([]domcart.Line, len(lines))
	copy(result, lines)
	return result
}
