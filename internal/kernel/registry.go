package kernel

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownCustom is returned by Lookup for names nobody registered.
var ErrUnknownCustom = errors.New("kernel: unknown custom kernel")

// Factory constructs a custom kernel using an optional configuration map.
type Factory func(cfg map[string]string) (Func, error)

// DefaultCustomName is the custom kernel installed when none is chosen.
const DefaultCustomName = "solid"

var (
	registryMu sync.RWMutex
	customs    = map[string]Factory{}
)

// Register adds a custom kernel factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	registryMu.Lock()
	customs[name] = f
	registryMu.Unlock()
}

// Lookup builds the custom kernel registered under name.
func Lookup(name string, cfg map[string]string) (Func, error) {
	registryMu.RLock()
	f, ok := customs[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCustom, name)
	}
	k, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("kernel: build %q: %w", name, err)
	}
	return k, nil
}

// Names lists the registered custom kernels in lexical order.
func Names() []string {
	registryMu.RLock()
	names := make([]string, 0, len(customs))
	for name := range customs {
		names = append(names, name)
	}
	registryMu.RUnlock()
	slices.Sort(names)
	return names
}

// DefaultCustom returns the stock custom kernel.
func DefaultCustom() Func { return Solid(Sky) }
