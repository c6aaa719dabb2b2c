package logger

import "sync"

// Component names under which authkit packages resolve their loggers.
// Host applications can reroute a single component with Register.
const (
	ComponentToken      = "token"
	ComponentPassword   = "password"
	ComponentConfig     = "config"
	ComponentValidation = "validation"
)

var (
	namedMu sync.RWMutex
	named   = map[string]*Logger{}
)

// Register binds a logger to a component name so that subsequent Get
// calls for that name return it.
func Register(name string, l *Logger) {
	namedMu.Lock()
	defer namedMu.Unlock()
	named[name] = l
}

// Get returns the logger registered under name. Unregistered names fall
// back to the global logger tagged with the component name, so Get is
// safe to call even before Init.
func Get(name string) *Logger {
	namedMu.RLock()
	l, ok := named[name]
	namedMu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults derives component loggers from the global logger and
// registers them under the given names. Init seeds the registry with the
// authkit component names; call it again after swapping the global logger
// to re-derive them.
func RegisterDefaults(names ...string) {
	for _, name := range names {
		Register(name, GetGlobalLogger().WithComponent(name))
	}
}
