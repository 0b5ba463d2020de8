package loader

import (
	"fmt"
	"plugin"
	"sort"

	"saturn/pkg/algorithm"
)

// Reference locates a compiled artifact containing candidate algorithm
// types. Immutable once supplied.
type Reference string

// Factory constructs a fresh algorithm instance.
type Factory func() algorithm.Algorithm

// Candidate is one algorithm type exposed by an artifact.
type Candidate struct {
	// Name is the qualified type name, e.g. "examples.Momentum".
	Name string

	// New constructs an instance of the candidate.
	New Factory
}

// Resolver enumerates the candidate types exposed by an artifact.
type Resolver interface {
	Resolve(ref Reference) ([]Candidate, error)
}

// AlgorithmsSymbol is the symbol a plugin artifact must export: a map from
// qualified type name to constructor.
const AlgorithmsSymbol = "Algorithms"

// Compile-time interface checks.
var _ Resolver = (*PluginResolver)(nil)
var _ Resolver = (*StaticResolver)(nil)

// PluginResolver resolves candidates from a Go plugin artifact built with
// -buildmode=plugin. The artifact exports AlgorithmsSymbol as a
// map[string]func() algorithm.Algorithm.
type PluginResolver struct{}

// NewPluginResolver creates a PluginResolver.
func NewPluginResolver() *PluginResolver {
	return &PluginResolver{}
}

// Resolve opens the plugin and enumerates its exported algorithm factories.
func (r *PluginResolver) Resolve(ref Reference) ([]Candidate, error) {
	p, err := plugin.Open(string(ref))
	if err != nil {
		return nil, fmt.Errorf("opening artifact %q: %w", ref, err)
	}

	sym, err := p.Lookup(AlgorithmsSymbol)
	if err != nil {
		return nil, fmt.Errorf("artifact %q does not export %s: %w", ref, AlgorithmsSymbol, err)
	}

	factories, ok := sym.(*map[string]func() algorithm.Algorithm)
	if !ok {
		return nil, fmt.Errorf("artifact %q exports %s with unexpected type %T", ref, AlgorithmsSymbol, sym)
	}

	return candidatesFromMap(*factories), nil
}

// StaticResolver resolves candidates from an in-memory factory map. Used for
// algorithms compiled into the host and in tests.
type StaticResolver struct {
	factories map[string]func() algorithm.Algorithm
}

// NewStaticResolver creates a StaticResolver over the given factory map.
func NewStaticResolver(factories map[string]func() algorithm.Algorithm) *StaticResolver {
	return &StaticResolver{factories: factories}
}

// Resolve returns the registered candidates regardless of the reference.
func (r *StaticResolver) Resolve(_ Reference) ([]Candidate, error) {
	return candidatesFromMap(r.factories), nil
}

func candidatesFromMap(factories map[string]func() algorithm.Algorithm) []Candidate {
	out := make([]Candidate, 0, len(factories))
	for name, fn := range factories {
		out = append(out, Candidate{Name: name, New: fn})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
