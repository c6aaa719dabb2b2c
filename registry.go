package authkit

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry holds named TokenVerifier instances and hands them out to
// middleware and interceptors. Names are whatever the caller finds
// useful: a token purpose ("access", "session"), a tenant key, or a
// verification scheme. Safe for concurrent use.
//
//	reg := authkit.NewRegistry()
//	reg.Register("access", tokenSvc)
//	reg.Register("session", authkit.VerifierFunc(mySessionLookup))
//
//	verifier, _ := reg.Default() // "access", the first one registered
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]TokenVerifier
	primary string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]TokenVerifier)}
}

// Register stores v under name, replacing any verifier already there.
// The first name ever registered becomes the default until SetDefault
// picks another.
func (r *Registry) Register(name string, v TokenVerifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.primary == "" {
		r.primary = name
	}
	r.byName[name] = v
}

// Get looks up the verifier registered under name.
func (r *Registry) Get(name string) (TokenVerifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byName[name]
	return v, ok
}

// MustGet is Get for wiring code that treats a missing name as a
// programming error. It panics when name is not registered.
func (r *Registry) MustGet(name string) TokenVerifier {
	v, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("authkit: verifier %q not registered", name))
	}
	return v
}

// Default returns the default verifier, or false when nothing has been
// registered yet.
func (r *Registry) Default() (TokenVerifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.primary == "" {
		return nil, false
	}
	v, ok := r.byName[r.primary]
	return v, ok
}

// SetDefault makes an already registered name the default.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; ok {
		r.primary = name
		return nil
	}
	return fmt.Errorf("authkit: verifier %q not registered", name)
}

// Names returns the registered verifier names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byName))
}
