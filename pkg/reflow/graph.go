package reflow

import "sort"

// depGraph is the dependency graph over a batch of work orders: nodes
// are orders, edges point from a dependency to the order that depends
// on it. Built once per Reflow call and never mutated concurrently.
type depGraph struct {
	orders     map[WorkOrderID]*WorkOrder
	dependents map[WorkOrderID][]WorkOrderID // Y -> [X, ...] where X depends on Y
}

// buildGraph indexes orders and validates that every DependsOn id
// resolves to another order in the same batch.
func buildGraph(orders []WorkOrder) (*depGraph, error) {
	g := &depGraph{
		orders:     make(map[WorkOrderID]*WorkOrder, len(orders)),
		dependents: make(map[WorkOrderID][]WorkOrderID, len(orders)),
	}
	for i := range orders {
		o := &orders[i]
		g.orders[o.ID] = o
	}
	for i := range orders {
		o := &orders[i]
		for _, dep := range o.DependsOn {
			if _, ok := g.orders[dep]; !ok {
				return nil, &MissingDependencyError{OrderID: o.ID, DependencyID: dep}
			}
			g.dependents[dep] = append(g.dependents[dep], o.ID)
		}
	}
	return g, nil
}

// lessReady implements the deterministic tie-break: earlier
// OriginalStart first, then lexical id, so two runs over the same
// batch always emit the same order.
func lessReady(a, b *WorkOrder) bool {
	if !a.OriginalStart.Equal(b.OriginalStart) {
		return a.OriginalStart.Before(b.OriginalStart)
	}
	return a.ID < b.ID
}

// topologicalSort runs Kahn's algorithm over g, breaking ties among
// simultaneously-ready orders by (OriginalStart, ID). Returns a
// CircularDependencyError carrying a cycle witness if the graph cannot
// be fully drained.
func topologicalSort(g *depGraph) ([]WorkOrderID, error) {
	inDegree := make(map[WorkOrderID]int, len(g.orders))
	for id, o := range g.orders {
		inDegree[id] = len(o.DependsOn)
	}

	var ready []WorkOrderID
	for id, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	sortReady(g, ready)

	order := make([]WorkOrderID, 0, len(g.orders))
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		var freed []WorkOrderID
		for _, dep := range g.dependents[next] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				freed = append(freed, dep)
			}
		}
		if len(freed) > 0 {
			sortReady(g, freed)
			ready = mergeReady(ready, freed, g)
		}
	}

	if len(order) < len(g.orders) {
		return nil, &CircularDependencyError{Cycle: findCycle(g)}
	}
	return order, nil
}

func sortReady(g *depGraph, ids []WorkOrderID) {
	sort.Slice(ids, func(i, j int) bool {
		return lessReady(g.orders[ids[i]], g.orders[ids[j]])
	})
}

// mergeReady merges two already-sorted id slices, keeping the
// (OriginalStart, ID) order across the merged ready pool.
func mergeReady(a, b []WorkOrderID, g *depGraph) []WorkOrderID {
	merged := make([]WorkOrderID, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if lessReady(g.orders[a[i]], g.orders[b[j]]) {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}

// findCycle performs a DFS from every unvisited node, tracking the
// current recursion stack as a path. The first time it revisits a node
// already on that stack, the stack slice from that node onward (plus
// the revisited node again) is the cycle witness.
func findCycle(g *depGraph) []WorkOrderID {
	const (
		unvisited = 0
		onStack   = 1
		done      = 2
	)
	state := make(map[WorkOrderID]int, len(g.orders))
	var stack []WorkOrderID

	var visit func(id WorkOrderID) []WorkOrderID
	visit = func(id WorkOrderID) []WorkOrderID {
		state[id] = onStack
		stack = append(stack, id)

		for _, dep := range g.orders[id].DependsOn {
			switch state[dep] {
			case onStack:
				for i, s := range stack {
					if s == dep {
						cycle := append([]WorkOrderID{}, stack[i:]...)
						return append(cycle, dep)
					}
				}
			case unvisited:
				if cyc := visit(dep); cyc != nil {
					return cyc
				}
			}
		}

		state[id] = done
		stack = stack[:len(stack)-1]
		return nil
	}

	ids := make([]WorkOrderID, 0, len(g.orders))
	for id := range g.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if state[id] == unvisited {
			if cyc := visit(id); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}

// transitiveDependents returns every order reachable by following
// "depends on me" edges forward from id, i.e. everything that would be
// affected, directly or indirectly, by id slipping.
func transitiveDependents(g *depGraph, id WorkOrderID) []WorkOrderID {
	visited := map[WorkOrderID]bool{id: true}
	queue := []WorkOrderID{id}
	var out []WorkOrderID
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range g.dependents[cur] {
			if !visited[dep] {
				visited[dep] = true
				out = append(out, dep)
				queue = append(queue, dep)
			}
		}
	}
	return out
}

// transitiveDependencies returns every order id must wait on, directly
// or indirectly.
func transitiveDependencies(g *depGraph, id WorkOrderID) []WorkOrderID {
	visited := map[WorkOrderID]bool{id: true}
	queue := []WorkOrderID{id}
	var out []WorkOrderID
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		o := g.orders[cur]
		if o == nil {
			continue
		}
		for _, dep := range o.DependsOn {
			if !visited[dep] {
				visited[dep] = true
				out = append(out, dep)
				queue = append(queue, dep)
			}
		}
	}
	return out
}
