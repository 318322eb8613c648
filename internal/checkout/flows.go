package checkout

import (
	"sync"

	"grocerystore/internal/domain/checkout"
)

// Flows tracks the live checkout flow per session. A session has at most
// one flow at a time; it is discarded once submitted or when the session
// ends. Access to a flow is serialized per session.
type Flows struct {
	mu sync.Mutex
	m  map[string]*flowEntry
}

type flowEntry struct {
	mu   sync.Mutex
	flow *checkout.Flow
}

func NewFlows() *Flows {
	return &Flows{m: make(map[string]*flowEntry)}
}

func (fs *Flows) entry(sessionID string, onCreate func(*checkout.Flow)) *flowEntry {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	e, ok := fs.m[sessionID]
	if !ok {
		e = &flowEntry{flow: checkout.NewFlow()}
		if onCreate != nil {
			onCreate(e.flow)
		}
		fs.m[sessionID] = e
	}
	return e
}

// With runs fn against the session's flow, creating the flow first if the
// session has none. onCreate runs once, on creation, before fn.
func (fs *Flows) With(sessionID string, onCreate func(*checkout.Flow), fn func(*checkout.Flow) error) error {
	e := fs.entry(sessionID, onCreate)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.flow)
}

func (fs *Flows) Discard(sessionID string) {
	fs.mu.Lock()
	delete(fs.m, sessionID)
	fs.mu.Unlock()
}
