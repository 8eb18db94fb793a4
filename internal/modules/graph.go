package modules

import (
	"fmt"
	"strings"
)

// graph records which package directories use which.
type graph struct {
	nodes   []string
	seen    map[string]bool
	deps    map[string][]string
	reverse map[string][]string
}

func newGraph() *graph {
	return &graph{
		seen:    make(map[string]bool),
		deps:    make(map[string][]string),
		reverse: make(map[string][]string),
	}
}

func (g *graph) add(dir string) {
	if g.seen[dir] {
		return
	}
	g.seen[dir] = true
	g.nodes = append(g.nodes, dir)
}

// edge records that from uses to. Duplicate edges are ignored.
func (g *graph) edge(from, to string) {
	g.add(from)
	g.add(to)
	for _, d := range g.deps[from] {
		if d == to {
			return
		}
	}
	g.deps[from] = append(g.deps[from], to)
	g.reverse[to] = append(g.reverse[to], from)
}

// cycle returns the first use cycle found, closed by repeating its first
// element, or nil. A package using itself is not a cycle.
func (g *graph) cycle() []string {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string

	var visit func(string) []string
	visit = func(n string) []string {
		visited[n] = true
		onStack[n] = true
		path = append(path, n)
		for _, d := range g.deps[n] {
			if d == n {
				continue
			}
			if !visited[d] {
				if c := visit(d); c != nil {
					return c
				}
				continue
			}
			if onStack[d] {
				for i, p := range path {
					if p == d {
						c := append([]string{}, path[i:]...)
						return append(c, d)
					}
				}
			}
		}
		onStack[n] = false
		path = path[:len(path)-1]
		return nil
	}

	for _, n := range g.nodes {
		if !visited[n] {
			if c := visit(n); c != nil {
				return c
			}
		}
	}
	return nil
}

// order returns the packages with every dependency ahead of its users,
// ties broken by discovery order.
func (g *graph) order() ([]string, error) {
	if c := g.cycle(); c != nil {
		return nil, &CycleError{Dirs: c}
	}

	pending := make(map[string]int, len(g.nodes))
	for _, n := range g.nodes {
		for _, d := range g.deps[n] {
			if d != n {
				pending[n]++
			}
		}
	}

	var queue []string
	for _, n := range g.nodes {
		if pending[n] == 0 {
			queue = append(queue, n)
		}
	}

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		result = append(result, cur)
		for _, user := range g.reverse[cur] {
			if user == cur {
				continue
			}
			pending[user]--
			if pending[user] == 0 {
				queue = append(queue, user)
			}
		}
	}
	return result, nil
}

// dependents returns the packages with an edge to dir, listed in the
// sequence of order. A self-use is not reported.
func (g *graph) dependents(dir string, order []string) []string {
	users := make(map[string]bool)
	for _, user := range g.reverse[dir] {
		if user != dir {
			users[user] = true
		}
	}
	var out []string
	for _, n := range order {
		if users[n] {
			out = append(out, n)
		}
	}
	return out
}

// CycleError reports packages that use each other in a loop.
type CycleError struct {
	Dirs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("use cycle: %s", strings.Join(e.Dirs, " -> "))
}
