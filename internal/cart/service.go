package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/catalog"
)

var (
	ErrSessionRequired = errors.New("session id is required")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrProductNotFound = errors.New("product not found")
	ErrLineNotFound    = errors.New("item not found in cart")
	ErrClearFailed     = errors.New("clear cart")
)

// ProductFinder resolves products for new cart lines.
type ProductFinder interface {
	Get(ctx context.Context, id int64) (catalog.Product, error)
}

// Service owns cart mutations. Read-modify-write cycles are serialized per session,
// so concurrent requests for one session cannot lose updates.
type Service struct {
	store    Store
	products ProductFinder
	locks    *sessionLocks
	now      func() time.Time
}

func NewService(store Store, products ProductFinder) *Service {
	return &Service{
		store:    store,
		products: products,
		locks:    newSessionLocks(),
		now:      time.Now,
	}
}

func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	return s.load(ctx, sessionID)
}

func (s *Service) Add(ctx context.Context, sessionID string, productID int64, quantity int) (*Cart, error) {
	if quantity <= 0 || quantity > MaxQuantity {
		return nil, ErrInvalidQuantity
	}

	return s.mutate(ctx, sessionID, func(c *Cart) error {
		p, err := s.products.Get(ctx, productID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("lookup product: %w", err)
		}
		return c.add(p, quantity)
	})
}

// SetQuantity replaces a line's quantity. A quantity of zero or less removes the line.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*Cart, bool, error) {
	var removed bool
	c, err := s.mutate(ctx, sessionID, func(c *Cart) error {
		var err error
		removed, err = c.setQuantity(productID, quantity)
		return err
	})
	return c, removed, err
}

func (s *Service) Remove(ctx context.Context, sessionID string, productID int64) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.remove(productID)
		return nil
	})
}

func (s *Service) Clear(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("delete cart: %w", err)
	}
	return New(sessionID), nil
}

// Consume hands fn a snapshot of the session's cart while holding the session lock.
// The cart is cleared only when fn succeeds. A failed clear is reported as ErrClearFailed.
func (s *Service) Consume(ctx context.Context, sessionID string, fn func(snapshot *Cart) error) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := fn(c.Clone()); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: %v", ErrClearFailed, err)
	}
	return nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(c *Cart) error) (*Cart, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(c); err != nil {
		return nil, err
	}

	c.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return c, nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*Cart, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return New(sessionID), nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return c, nil
}

type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

// lock blocks until the session is free and returns its release func.
// Entries are dropped once no goroutine holds or waits on them.
func (l *sessionLocks) lock(sessionID string) func() {
	l.mu.Lock()
	sl, ok := l.locks[sessionID]
	if !ok {
		sl = &sessionLock{}
		l.locks[sessionID] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()

	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}
