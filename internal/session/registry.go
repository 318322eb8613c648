package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"grocerystore/internal/domain/account"
	"grocerystore/internal/domain/cart"
	"grocerystore/internal/domain/catalog"
	"grocerystore/internal/domain/order"
)

// Session is one logged-in browser session: identity plus the state that
// lives only as long as the session does — the cart and the just-placed
// order handed to the confirmation view. Nothing here touches the database.
type Session struct {
	ID        string
	AccountID int64
	Role      account.Role
	CreatedAt time.Time
	expiresAt time.Time

	mu        sync.Mutex
	cart      *cart.Cart
	lastOrder *order.Order
}

func (s *Session) AddToCart(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(p)
}

func (s *Session) RemoveFromCart(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(productID)
}

func (s *Session) UpdateCartQuantity(productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(productID, quantity)
}

func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

func (s *Session) CartIsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsEmpty()
}

// CartSnapshot returns the lines and totals under one lock, so checkout
// builds its order from a single consistent view of the cart.
func (s *Session) CartSnapshot() ([]cart.Line, cart.Totals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines(), s.cart.Totals()
}

// SetLastOrder parks the just-placed order for the confirmation view.
func (s *Session) SetLastOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastOrder = o
}

// TakeLastOrder hands the parked order over exactly once. A second call,
// like a reload of the confirmation view, finds nothing.
func (s *Session) TakeLastOrder() (*order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.lastOrder
	s.lastOrder = nil
	return o, o != nil
}

// Registry holds live sessions in memory, keyed by session ID. Every
// Create sweeps the whole map, so abandoned sessions are freed without
// their tokens ever being presented again.
type Registry struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Session
	onDrop   func(sessionID string)
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// OnDrop registers a callback invoked whenever a session ends, whether by
// logout, expiry on lookup, or the sweep. It tears down per-session state
// held elsewhere, like a checkout flow in progress. Register before the
// registry sees traffic.
func (r *Registry) OnDrop(fn func(sessionID string)) {
	r.onDrop = fn
}

func (r *Registry) Create(accountID int64, role account.Role) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Role:      role,
		CreatedAt: now,
		expiresAt: now.Add(r.ttl),
		cart:      cart.New(),
	}
	r.mu.Lock()
	expired := r.sweepLocked(now)
	r.sessions[s.ID] = s
	r.mu.Unlock()
	r.finish(expired)
	return s
}

func (r *Registry) sweepLocked(now time.Time) []*Session {
	var expired []*Session
	for id, s := range r.sessions {
		if now.After(s.expiresAt) {
			delete(r.sessions, id)
			expired = append(expired, s)
		}
	}
	return expired
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(s.expiresAt) {
		r.Drop(id)
		return nil, false
	}
	return s, true
}

// Drop ends a session: the cart is emptied and the session forgotten, which
// is the logout contract. Tokens referencing the ID stop resolving.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		r.finish([]*Session{s})
	}
}

// finish runs teardown for ended sessions outside the registry lock.
func (r *Registry) finish(dropped []*Session) {
	for _, s := range dropped {
		s.ClearCart()
		if r.onDrop != nil {
			r.onDrop(s.ID)
		}
	}
}
