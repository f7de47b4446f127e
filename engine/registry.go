package engine

import (
	"fmt"
	"sort"
)

var registry = map[string]Game{}

// Register adds a family to the registry. Families call this from
// their init functions; registering a duplicate name panics.
func Register(g Game) {
	name := g.Name()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("engine: duplicate game registration %q", name))
	}
	registry[name] = g
}

// Lookup returns the registered family called name.
func Lookup(name string) (Game, error) {
	g, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}
	return g, nil
}

// Games lists registered family names in sorted order.
func Games() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
