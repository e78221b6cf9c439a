// core/catalog.go
package core

import (
	"fmt"
	"sync"

	"github.com/joeydtaylor/dispatch-core/pkg/dispatch"
)

var (
	hmu      sync.RWMutex
	handlers = map[string]dispatch.Handler{}
)

// RegisterHandler makes a handler available under a name referenced in
// manifest.toml.
func RegisterHandler(name string, h dispatch.Handler) error {
	if name == "" || h == nil {
		return fmt.Errorf("handler name and func required")
	}
	hmu.Lock()
	defer hmu.Unlock()
	if _, dup := handlers[name]; dup {
		return fmt.Errorf("handler %q already registered", name)
	}
	handlers[name] = h
	return nil
}

func MustRegisterHandler(name string, h dispatch.Handler) {
	if err := RegisterHandler(name, h); err != nil {
		panic(err)
	}
}

// LookupHandler retrieves a registered handler by name.
func LookupHandler(name string) (dispatch.Handler, bool) {
	hmu.RLock()
	defer hmu.RUnlock()
	h, ok := handlers[name]
	return h, ok
}
