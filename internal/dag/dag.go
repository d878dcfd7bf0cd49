// Package dag models alias dependencies between tokens as a directed graph.
// An edge runs from a referenced token to the token that aliases it, so
// changing a node affects everything downstream of it.
package dag

import (
	"fmt"
	"slices"
	"sort"
)

// Graph is a directed graph of token names.
type Graph struct {
	nodes    map[string]struct{}
	edges    map[string][]string // target -> aliases (dependents)
	parents  map[string][]string // alias -> targets (dependencies)
	edgeSize int
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]struct{}),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Adding an existing node is a no-op.
func (g *Graph) AddNode(id string) {
	if _, exists := g.nodes[id]; exists {
		return
	}
	g.nodes[id] = struct{}{}
	g.edges[id] = []string{}
	g.parents[id] = []string{}
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// AddEdge records that alias depends on target.
// A self-loop is rejected; callers report it as a one-node cycle.
func (g *Graph) AddEdge(target, alias string) error {
	if !g.HasNode(target) {
		return fmt.Errorf("node %q does not exist", target)
	}
	if !g.HasNode(alias) {
		return fmt.Errorf("node %q does not exist", alias)
	}
	if target == alias {
		return fmt.Errorf("self-loop detected: %s", target)
	}

	if !slices.Contains(g.edges[target], alias) {
		g.edges[target] = append(g.edges[target], alias)
		g.edgeSize++
	}
	if !slices.Contains(g.parents[alias], target) {
		g.parents[alias] = append(g.parents[alias], target)
	}
	return nil
}

// Dependencies returns the names id aliases directly.
func (g *Graph) Dependencies(id string) []string {
	return slices.Clone(g.parents[id])
}

// Dependents returns the names that alias id directly.
func (g *Graph) Dependents(id string) []string {
	return slices.Clone(g.edges[id])
}

// Nodes returns all node names, sorted.
func (g *Graph) Nodes() []string {
	return sortedKeys(g.nodes)
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return g.edgeSize
}

// FindCycle returns a cycle as a path that starts and ends with the same
// name, or nil when the graph is acyclic. The path follows alias direction
// (a -> b means a aliases b). Traversal is in sorted order so the reported
// cycle is stable.
func (g *Graph) FindCycle() []string {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		onStack[id] = true
		stack = append(stack, id)

		deps := g.Dependencies(id)
		sort.Strings(deps)
		for _, dep := range deps {
			if !visited[dep] {
				if dfs(dep) {
					return true
				}
			} else if onStack[dep] {
				start := slices.Index(stack, dep)
				cycle = append(slices.Clone(stack[start:]), dep)
				return true
			}
		}

		stack = stack[:len(stack)-1]
		onStack[id] = false
		return false
	}

	for _, id := range g.Nodes() {
		if !visited[id] && dfs(id) {
			return cycle
		}
	}
	return nil
}

// TopologicalSort returns node names with every alias after its target.
// Returns an error if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	if cycle := g.FindCycle(); cycle != nil {
		return nil, fmt.Errorf("cycle detected: %v", cycle)
	}

	visited := make(map[string]bool)
	result := make([]string, 0, len(g.nodes))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		deps := g.Dependencies(id)
		sort.Strings(deps)
		for _, dep := range deps {
			visit(dep)
		}
		result = append(result, id)
	}

	for _, id := range g.Nodes() {
		visit(id)
	}
	return result, nil
}

// Affected returns the changed names plus every name that aliases them,
// directly or transitively. Unknown names are ignored.
func (g *Graph) Affected(changed []string) []string {
	affected := make(map[string]struct{})

	var mark func(id string)
	mark = func(id string) {
		if _, seen := affected[id]; seen {
			return
		}
		affected[id] = struct{}{}
		for _, child := range g.edges[id] {
			mark(child)
		}
	}

	for _, id := range changed {
		if g.HasNode(id) {
			mark(id)
		}
	}
	return sortedKeys(affected)
}

// Upstream returns every name id depends on, directly or transitively.
func (g *Graph) Upstream(id string) []string {
	upstream := make(map[string]struct{})

	var mark func(nodeID string)
	mark = func(nodeID string) {
		for _, parent := range g.parents[nodeID] {
			if _, seen := upstream[parent]; !seen {
				upstream[parent] = struct{}{}
				mark(parent)
			}
		}
	}

	mark(id)
	return sortedKeys(upstream)
}

// Roots returns nodes that alias nothing.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.Nodes() {
		if len(g.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
