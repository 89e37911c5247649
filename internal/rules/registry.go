package rules

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownRule is returned by Filter when a requested rule name is not
// registered. Callers are expected to fail before any fetch occurs.
var ErrUnknownRule = errors.New("unknown rule")

var (
	mu      sync.RWMutex
	ordered []Rule
	byID    = make(map[string]Rule)
)

// Register adds a rule to the process-wide registry. Registration happens once
// at startup; a duplicate ID is a defect in the compiled-in rule set, not a
// runtime condition, so it panics.
func Register(r Rule) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := byID[r.ID()]; exists {
		panic(fmt.Sprintf("rule %s already registered", r.ID()))
	}
	byID[r.ID()] = r
	ordered = append(ordered, r)
}

// All returns every registered rule in registration order.
func All() []Rule {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Rule, len(ordered))
	copy(out, ordered)
	return out
}

// Filter returns the rules whose IDs appear in names, preserving registration
// order. An empty names list selects all rules. Any unknown name fails with
// ErrUnknownRule before a single repository is fetched.
func Filter(names []string) ([]Rule, error) {
	mu.RLock()
	defer mu.RUnlock()

	if len(names) == 0 {
		out := make([]Rule, len(ordered))
		copy(out, ordered)
		return out, nil
	}

	want := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := byID[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
		}
		want[name] = struct{}{}
	}

	var selected []Rule
	for _, r := range ordered {
		if _, ok := want[r.ID()]; ok {
			selected = append(selected, r)
		}
	}
	return selected, nil
}

// reset clears the registry. Test use only.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	ordered = nil
	byID = make(map[string]Rule)
}
