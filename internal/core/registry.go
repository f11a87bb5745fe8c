package core

import (
	"sync"
	"sync/atomic"
)

// Registry holds the active mocks of one test. It is reachable from code
// under test only on goroutines bound to it: the goroutine that created it,
// goroutines that registered mocks through it, and goroutines bound with
// Bind or started with Go.
type Registry struct {
	t TestReporter

	mu         sync.Mutex
	slots      map[Key]*slot
	goroutines map[uint64]struct{}
	active     map[activation]struct{}
	closed     bool
}

// ForTest returns the Registry for the given test, creating one if needed,
// and binds the calling goroutine to it.
// Multiple calls with the same TestReporter return the same Registry.
//
// If the TestReporter supports Cleanup (like *testing.T), the Registry is
// cleared, unbound from every goroutine and forgotten when the test
// completes.
func ForTest(t TestReporter) *Registry {
	registryMu.Lock()

	reg, ok := registry[t]
	if !ok {
		reg = newRegistry(t)
		registry[t] = reg
	}

	registryMu.Unlock()

	if !ok {
		if cr, isRegistrar := t.(cleanupRegistrar); isRegistrar {
			cr.Cleanup(reg.Close)
		}
	}

	reg.bind(goroutineID())

	return reg
}

// Bind makes the registry's mocks visible on the calling goroutine until
// the returned function is called. A previous binding of the goroutine is
// restored on unbind; binding a goroutine already bound to r is a no-op.
func (r *Registry) Bind() (unbind func()) {
	gid := goroutineID()

	bindingsMu.Lock()
	prev := bindings[gid]
	bindingsMu.Unlock()

	if prev == r {
		return func() {}
	}

	r.bind(gid)

	return func() {
		r.unbind(gid)

		if prev != nil {
			prev.bind(gid)
		}
	}
}

// Close drops every mock and unbinds every goroutine. A closed registry
// is forgotten; a later ForTest with the same reporter starts afresh.
func (r *Registry) Close() {
	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()

		return
	}

	r.closed = true
	dropped := len(r.slots)
	r.slots = make(map[Key]*slot)

	gids := make([]uint64, 0, len(r.goroutines))
	for gid := range r.goroutines {
		gids = append(gids, gid)
	}

	r.goroutines = make(map[uint64]struct{})
	r.mu.Unlock()

	liveSlots.Add(int64(-dropped))

	bindingsMu.Lock()

	for _, gid := range gids {
		if bindings[gid] == r {
			delete(bindings, gid)
		}
	}

	bindingsMu.Unlock()

	registryMu.Lock()

	if registry[r.t] == r {
		delete(registry, r.t)
	}

	registryMu.Unlock()
}

// Go runs fn on a new goroutine bound to the registry.
func (r *Registry) Go(fn func()) {
	go func() {
		unbind := r.Bind()
		defer unbind()

		fn()
	}()
}

// Len returns the number of active mocks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.slots)
}

// activation is a key currently being served by a closure on a goroutine.
type activation struct {
	key Key
	gid uint64
}

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}

// slot is the registration held for one key.
type slot struct {
	mock      any
	raw       bool
	handedOut map[uintptr]any // payloads are kept so their addresses stay unique
}

func (r *Registry) bind(gid uint64) {
	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()

		return
	}

	r.goroutines[gid] = struct{}{}
	r.mu.Unlock()

	bindingsMu.Lock()
	bindings[gid] = r
	bindingsMu.Unlock()
}

// enter returns the slot for key and marks it active on gid. It reports
// false when there is no slot or the key is already being served on gid,
// so a closure that calls its own target reaches the real body.
func (r *Registry) enter(key Key, gid uint64) (*slot, func(), bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.slots[key]
	if !ok {
		return nil, nil, false
	}

	act := activation{key: key, gid: gid}
	if _, busy := r.active[act]; busy {
		return nil, nil, false
	}

	r.active[act] = struct{}{}

	return entry, func() {
		r.mu.Lock()
		delete(r.active, act)
		r.mu.Unlock()
	}, true
}

func (r *Registry) has(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.slots[key]

	return ok
}

// handOut records the references in a Return payload and reports the
// first one already handed out by the same registration.
func (r *Registry) handOut(entry *slot, payload any, refs []uintptr) (uintptr, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ref := range refs {
		if _, seen := entry.handedOut[ref]; seen {
			return ref, true
		}
	}

	for _, ref := range refs {
		entry.handedOut[ref] = payload
	}

	return 0, false
}

func (r *Registry) remove(key Key) {
	r.mu.Lock()

	_, ok := r.slots[key]
	delete(r.slots, key)
	r.mu.Unlock()

	if ok {
		liveSlots.Add(-1)
	}
}

func (r *Registry) set(key Key, mock any, raw bool) {
	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()
		r.t.Fatalf("mockable: registering %s after the test finished", key)

		return
	}

	_, replaced := r.slots[key]
	r.slots[key] = &slot{mock: mock, raw: raw, handedOut: make(map[uintptr]any)}
	r.mu.Unlock()

	if !replaced {
		liveSlots.Add(1)
	}
}

func (r *Registry) unbind(gid uint64) {
	r.mu.Lock()
	delete(r.goroutines, gid)
	r.mu.Unlock()

	bindingsMu.Lock()

	if bindings[gid] == r {
		delete(bindings, gid)
	}

	bindingsMu.Unlock()
}

// current returns the registry bound to the calling goroutine, if any.
func current() (*Registry, uint64) {
	gid := goroutineID()

	bindingsMu.RLock()
	reg := bindings[gid]
	bindingsMu.RUnlock()

	return reg, gid
}

// lookup returns the registry for t without creating one.
func lookup(t TestReporter) (*Registry, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	reg, ok := registry[t]

	return reg, ok
}

func newRegistry(t TestReporter) *Registry {
	return &Registry{
		t:          t,
		slots:      make(map[Key]*slot),
		goroutines: make(map[uint64]struct{}),
		active:     make(map[activation]struct{}),
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	registry = make(map[TestReporter]*Registry)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
	//nolint:gochecknoglobals // goroutine id -> registry visible on it
	bindings = make(map[uint64]*Registry)
	//nolint:gochecknoglobals // Mutex for bindings
	bindingsMu sync.RWMutex
	//nolint:gochecknoglobals // process-wide count of registered mocks; zero skips goroutine lookup
	liveSlots atomic.Int64
)
