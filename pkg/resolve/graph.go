package resolve

import (
	"github.com/leapstack-labs/leaptoken/internal/dag"
	"github.com/leapstack-labs/leaptoken/pkg/token"
)

// Validate checks that every alias in set points at a defined token and
// that no aliases loop, across all platform values.
func Validate(set *token.Set) error {
	_, err := buildGraph(set)
	return err
}

// Dependents returns the changed names plus every token that aliases one
// of them, directly or through other aliases, sorted.
func Dependents(set *token.Set, changed ...string) ([]string, error) {
	g, err := buildGraph(set)
	if err != nil {
		return nil, err
	}
	return g.Affected(changed), nil
}

// Dependencies returns every token name aliases, directly or transitively.
func Dependencies(set *token.Set, name string) ([]string, error) {
	if !set.Has(name) {
		return nil, &token.UnknownTokenError{Name: name}
	}
	g, err := buildGraph(set)
	if err != nil {
		return nil, err
	}
	return g.Upstream(name), nil
}

// Order returns token names with every alias after the tokens it refers to.
func Order(set *token.Set) ([]string, error) {
	g, err := buildGraph(set)
	if err != nil {
		return nil, err
	}
	return g.TopologicalSort()
}

func buildGraph(set *token.Set) (*dag.Graph, error) {
	g := dag.NewGraph()
	tokens := set.Tokens()
	for _, tok := range tokens {
		g.AddNode(tok.Name)
	}
	for _, tok := range tokens {
		for _, ref := range tok.References() {
			if !set.Has(ref) {
				return nil, &token.UnknownTokenError{Name: ref, Referrer: tok.Name}
			}
			if ref == tok.Name {
				return nil, &token.AliasCycleError{Path: []string{ref, ref}}
			}
			if err := g.AddEdge(ref, tok.Name); err != nil {
				return nil, err
			}
		}
	}
	if cycle := g.FindCycle(); cycle != nil {
		return nil, &token.AliasCycleError{Path: cycle}
	}
	return g, nil
}
