package appconfig

import "sync"

// The process-wide configuration is installed once at startup, before any
// record is mapped, and never mutated. Concurrent readers need no further
// synchronization; the mutex only guards the install itself.

var (
	defaultMu     sync.RWMutex
	defaultConfig *Config
)

// Install makes cfg the process-wide configuration. Panics if a
// configuration is already installed: the mapping set is load-once by
// design and must not change under running evaluations.
func Install(cfg *Config) {
	if cfg == nil {
		panic("appconfig: Install(nil)")
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultConfig != nil {
		panic("appconfig: configuration already installed")
	}
	defaultConfig = cfg
}

// Default returns the installed process-wide configuration, or nil when no
// configuration has been installed yet.
func Default() *Config {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultConfig
}
