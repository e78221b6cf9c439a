// dispatch/predicates.go
package dispatch

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Canonical predicate names for resource dispatch.
const (
	PredicateName          = "name"
	PredicateRequestMethod = "request_method"
)

// PredicateSet is the fixed, ordered list of predicate names one registry
// dispatches on. Every registration and lookup against that registry must
// supply a value for each name, no more, no fewer. Construction is the only
// mutation point.
type PredicateSet struct {
	names []string
	index map[string]struct{}
}

// NewPredicateSet validates names are non-empty and unique.
func NewPredicateSet(names ...string) (*PredicateSet, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("dispatch: at least one predicate name required")
	}
	idx := make(map[string]struct{}, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return nil, fmt.Errorf("dispatch: empty predicate name")
		}
		if _, dup := idx[n]; dup {
			return nil, fmt.Errorf("dispatch: duplicate predicate name %q", n)
		}
		idx[n] = struct{}{}
	}
	return &PredicateSet{names: append([]string(nil), names...), index: idx}, nil
}

func MustPredicateSet(names ...string) *PredicateSet {
	s, err := NewPredicateSet(names...)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultPredicateSet dispatches on route name and HTTP method.
func DefaultPredicateSet() *PredicateSet {
	return MustPredicateSet(PredicateName, PredicateRequestMethod)
}

// Names returns the predicate names in declaration order.
func (s *PredicateSet) Names() []string { return append([]string(nil), s.names...) }

func (s *PredicateSet) contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// keyFor flattens a full value mapping into the registry table key. The
// mapping's key set must equal the predicate set exactly. Each value is
// length-prefixed so embedded separator bytes cannot alias two distinct
// mappings onto one key.
func (s *PredicateSet) keyFor(values map[string]string) (string, error) {
	if err := s.check(values); err != nil {
		return "", err
	}
	var b strings.Builder
	for _, n := range s.names {
		v := values[n]
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String(), nil
}

func (s *PredicateSet) check(values map[string]string) error {
	var missing, extra []string
	for _, n := range s.names {
		if _, ok := values[n]; !ok {
			missing = append(missing, n)
		}
	}
	for k := range values {
		if !s.contains(k) {
			extra = append(extra, k)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return &ShapeError{Want: s.Names(), Missing: missing, Extra: extra}
}

// ShapeError reports a predicate value mapping whose key set does not match
// the registry's predicate set. Registrations and lookups fail fast on it.
type ShapeError struct {
	Want    []string
	Missing []string
	Extra   []string
}

func (e *ShapeError) Error() string {
	parts := []string{fmt.Sprintf("dispatch: predicate values must name exactly %v", e.Want)}
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing %v", e.Missing))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("unexpected %v", e.Extra))
	}
	return strings.Join(parts, "; ")
}
