// core/apply.go
package core

import (
	"fmt"

	"github.com/joeydtaylor/dispatch-core/pkg/dispatch"
	manifest "github.com/joeydtaylor/dispatch-core/pkg/manifest"
	"github.com/joeydtaylor/dispatch-core/pkg/registry"
)

// Apply runs the registration phase: every manifest resource is resolved
// against the handler and model catalogs and registered into the store.
// Later resources with identical constraints replace earlier ones, matching
// the predicate registry's last-write-wins contract.
func Apply(store *registry.Store, cfg manifest.Config) error {
	for i, rs := range cfg.Resources {
		b, ok := LookupModel(rs.Model)
		if !ok {
			return fmt.Errorf("resource %d: model %q not registered", i, rs.Model)
		}
		h, ok := LookupHandler(rs.Handler)
		if !ok {
			return fmt.Errorf("resource %d: handler %q not registered", i, rs.Handler)
		}
		constraints := map[string]string{
			dispatch.PredicateName:          rs.View,
			dispatch.PredicateRequestMethod: rs.Method,
		}
		if err := dispatch.RegisterResource(store, b.Type, h, constraints); err != nil {
			return fmt.Errorf("resource %d (%s %s): %w", i, rs.Method, rs.Handler, err)
		}
	}
	return nil
}
