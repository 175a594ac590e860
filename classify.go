package dagcheck

// Classify reports whether the directed graph formed by nodes and edges is
// acyclic, along with the input counts.
//
// Node IDs are interned to dense indices in input order, so traversal order
// follows the declared node order and, within a node, the declared edge order.
// Every edge must reference declared nodes on both ends and node IDs must be
// unique; otherwise a *MalformedGraphError is returned and no result is
// produced.
//
// Classify keeps no state between calls and is safe for concurrent use.
func Classify(nodes []Node, edges []Edge) (*Result, error) {
	g, err := newGraph(nodes, edges)
	if err != nil {
		return nil, err
	}
	return &Result{
		NumNodes: len(nodes),
		NumEdges: len(edges),
		IsDAG:    g.acyclic(),
	}, nil
}

// IsDAG is Classify without the counts.
func IsDAG(nodes []Node, edges []Edge) (bool, error) {
	res, err := Classify(nodes, edges)
	if err != nil {
		return false, err
	}
	return res.IsDAG, nil
}

// graph is an adjacency list over interned node indices.
type graph struct {
	adj [][]int
}

func newGraph(nodes []Node, edges []Edge) (*graph, error) {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, ok := index[n.ID]; ok {
			return nil, &MalformedGraphError{Reason: ReasonDuplicateNode, NodeID: n.ID, Edge: -1}
		}
		index[n.ID] = i
	}

	adj := make([][]int, len(nodes))
	for i, e := range edges {
		from, ok := index[e.Source]
		if !ok {
			return nil, &MalformedGraphError{Reason: ReasonUnknownSource, NodeID: e.Source, Edge: i}
		}
		to, ok := index[e.Target]
		if !ok {
			return nil, &MalformedGraphError{Reason: ReasonUnknownTarget, NodeID: e.Target, Edge: i}
		}
		adj[from] = append(adj[from], to)
	}
	return &graph{adj: adj}, nil
}

const (
	white = iota // unvisited
	gray         // on the current traversal path
	black        // fully explored, not part of any cycle
)

// frame is one entry of the explicit DFS stack: a node and the position of
// the next out-neighbour to visit.
type frame struct {
	node int
	next int
}

// acyclic runs a three-colour DFS from every node that is still white.
// It uses an explicit stack so depth is bounded by memory, not the goroutine
// stack.
func (g *graph) acyclic() bool {
	color := make([]uint8, len(g.adj))
	var stack []frame

	for root := range g.adj {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack = append(stack[:0], frame{node: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(g.adj[top.node]) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}
			next := g.adj[top.node][top.next]
			top.next++

			switch color[next] {
			case gray:
				return false
			case white:
				color[next] = gray
				stack = append(stack, frame{node: next})
			}
		}
	}
	return true
}
