package prim

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Prim{}
)

// Register adds a primitive to the global registry. Registering a name twice is an error.
func Register(p Prim) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[p.Name()]; ok {
		return fmt.Errorf("primitive %q already registered", p.Name())
	}
	registry[p.Name()] = p
	return nil
}

// Lookup returns the primitive registered under a name.
func Lookup(name string) (Prim, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[name]
	return p, ok
}

// Names returns the sorted list of registered primitive names.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	ret := make([]string, 0, len(registry))
	for n := range registry {
		ret = append(ret, n)
	}
	sort.Strings(ret)
	return ret
}

func mustRegister(ps ...Prim) {
	for _, p := range ps {
		if err := Register(p); err != nil {
			panic(err)
		}
	}
}

func init() {
	for _, u := range unaryOps {
		mustRegister(NewUniOp(u.name, u.fn))
	}

	mustRegister(
		NewIsNA(),
		NewNLevels(),
		NewLevels(),
		NewSetLevel(),
		NewSetDomain(),
		NewMatch(),
		NewWhich(),
		NewNRow(),
		NewRunif(),
		NewTranspose(),
		NewMMult(),
	)
}
