// SPDX-License-Identifier: MPL-2.0

// Package depgraph builds the directed dependency graph over a plugin
// catalog and computes which plugins must be active to satisfy a requested
// enable-set. Nodes are plugin names; an edge A -> B means A depends on B.
package depgraph

import (
	"plugman-cli/pkg/plugin"
)

type (
	// Graph is a directed graph over string-keyed nodes.
	Graph struct {
		// adjacency maps each node to its outgoing neighbors.
		adjacency map[string][]string
		// nodes tracks all nodes in insertion order for deterministic output.
		nodes []string
		// nodeSet provides O(1) lookup for node existence.
		nodeSet map[string]bool
	}

	// Resolution is the outcome of resolving a requested enable-set against
	// a catalog.
	Resolution struct {
		// Required lists every plugin that must be active to satisfy the
		// request, including transitive dependencies, in dependency-first
		// order when the reachable subgraph is acyclic (see Resolve).
		Required []plugin.Plugin
		// Missing lists requested names absent from the catalog. Missing
		// names are reported, never fatal; resolution proceeds with the
		// names that do exist.
		Missing []string
	}
)

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[string][]string),
		nodeSet:   make(map[string]bool),
	}
}

// AddNode adds a node to the graph. If the node already exists, this is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge adds a directed edge from -> to. Only "from" is implicitly added;
// edges may point at names absent from the graph (a dependency missing from
// the catalog) and simply dead-end there during traversal.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.adjacency[from] = append(g.adjacency[from], to)
}

// Reachable computes the set of graph nodes reachable from the seed names by
// following forward edges (BFS). Seeds absent from the graph contribute
// nothing; self-loops are harmless. The returned order is deterministic:
// breadth-first from the seeds in their given order.
func (g *Graph) Reachable(seeds []string) []string {
	visited := make(map[string]bool, len(g.nodes))
	var queue, result []string

	for _, s := range seeds {
		if g.nodeSet[s] && !visited[s] {
			visited[s] = true
			queue = append(queue, s)
		}
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range g.adjacency[node] {
			if !g.nodeSet[neighbor] || visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			queue = append(queue, neighbor)
		}
	}

	return result
}

// TopologicalSort returns an ordering of the graph's nodes using Kahn's
// algorithm, restricted to edges between existing nodes. The second return
// value is false when the graph contains a cycle, in which case no ordering
// exists. Nodes at the same topological level appear in insertion order.
func (g *Graph) TopologicalSort() ([]string, bool) {
	if len(g.nodes) == 0 {
		return nil, true
	}

	inDegree := make(map[string]int, len(g.nodes))
	for _, node := range g.nodes {
		inDegree[node] = 0
	}
	for _, neighbors := range g.adjacency {
		for _, neighbor := range neighbors {
			if g.nodeSet[neighbor] {
				inDegree[neighbor]++
			}
		}
	}

	queue := make([]string, 0)
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range g.adjacency[node] {
			if !g.nodeSet[neighbor] {
				continue
			}
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, false
	}
	return result, true
}

// FromCatalog builds the dependency graph for a catalog: one node per plugin
// name, one edge per declared dependency. A plugin depending on itself
// produces a self-loop, which reachability tolerates.
func FromCatalog(catalog []plugin.Plugin) *Graph {
	g := New()
	for _, p := range catalog {
		g.AddNode(p.Name)
		for _, dep := range p.Dependencies {
			g.AddEdge(p.Name, dep)
		}
	}
	return g
}

// Resolve computes the plugins required to enable the requested names
// against the catalog. Required is the transitive closure of the requested
// names over the dependency graph; Missing is requested − catalog, reported
// but never fatal. When the reachable subgraph is acyclic, Required is
// ordered dependencies-first so callers can materialize in a safe order;
// with a cycle the breadth-first reachable order is returned instead.
func Resolve(catalog []plugin.Plugin, requested []string) Resolution {
	byName := make(map[string]plugin.Plugin, len(catalog))
	for _, p := range catalog {
		// First record wins within one scan; duplicate names across scans
		// are reconciled later by the version merge.
		if _, ok := byName[p.Name]; !ok {
			byName[p.Name] = p
		}
	}

	var res Resolution
	seen := make(map[string]bool, len(requested))
	for _, name := range requested {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := byName[name]; !ok {
			res.Missing = append(res.Missing, name)
		}
	}

	g := FromCatalog(catalog)
	reachable := g.Reachable(requested)
	names := orderForMaterialization(byName, reachable)

	for _, name := range names {
		res.Required = append(res.Required, byName[name])
	}
	return res
}

// orderForMaterialization orders the reachable set dependencies-first by
// topologically sorting the reachable subgraph with edges reversed (a
// dependency must be in place before its dependents). Falls back to the
// reachable order when the subgraph has a cycle.
func orderForMaterialization(byName map[string]plugin.Plugin, reachable []string) []string {
	sub := New()
	inSub := make(map[string]bool, len(reachable))
	for _, name := range reachable {
		inSub[name] = true
	}
	for _, name := range reachable {
		sub.AddNode(name)
	}
	for _, name := range reachable {
		for _, dep := range byName[name].Dependencies {
			if dep == name || !inSub[dep] {
				continue
			}
			// Reversed edge: dep before dependent.
			sub.AddEdge(dep, name)
		}
	}

	ordered, ok := sub.TopologicalSort()
	if !ok {
		return reachable
	}
	return ordered
}
