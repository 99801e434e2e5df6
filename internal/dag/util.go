// Copyright 2024 rg0now. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dag

import (
	"fmt"
	"strings"
)

// New creates an empty graph.
func New() *Graph {
	return &Graph{byLabel: map[string]int{}, edges: map[string]map[string]bool{}}
}

// Roots returns a roots of the DAG, i.e., the nodes without an incoming edge.
func (g *Graph) Roots() []string {
	roots := make([]string, 0, len(g.Nodes))

	for _, j := range g.Nodes {
		isRoot := true
		for _, i := range g.Nodes {
			if g.HasEdge(i, j) {
				isRoot = false
				break
			}
		}
		if isRoot {
			roots = append(roots, j)
		}
	}
	return roots
}

// TopoSort returns the nodes so that every edge points forward. Among the nodes that are ready at
// the same time the one added first comes first. A cycle is an error naming the nodes on it.
func (g *Graph) TopoSort() ([]string, error) {
	indeg := make(map[string]int, len(g.Nodes))
	for _, from := range g.Nodes {
		for to := range g.edges[from] {
			indeg[to]++
		}
	}

	ret := make([]string, 0, len(g.Nodes))
	done := make(map[string]bool, len(g.Nodes))
	for len(ret) < len(g.Nodes) {
		progress := false
		for _, n := range g.Nodes {
			if done[n] || indeg[n] > 0 {
				continue
			}
			done[n] = true
			ret = append(ret, n)
			for _, to := range g.Edges(n) {
				indeg[to]--
			}
			progress = true
			break
		}

		if !progress {
			cycle := []string{}
			for _, n := range g.Nodes {
				if !done[n] {
					cycle = append(cycle, n)
				}
			}
			return nil, fmt.Errorf("dependency cycle among %s", strings.Join(cycle, ", "))
		}
	}

	return ret, nil
}
