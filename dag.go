package dagcheck

// Pipeline is a graph submitted for classification: declared nodes plus the
// directed edges between them.
type Pipeline struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a vertex of the pipeline. IDs are opaque (the empty string is a
// valid ID) and must be unique within one Pipeline.
type Node struct {
	ID string `json:"id"`
}

// Edge is a directed arc Source -> Target between two declared nodes.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Result is the outcome of classifying a Pipeline.
type Result struct {
	NumNodes int  `json:"num_nodes"`
	NumEdges int  `json:"num_edges"`
	IsDAG    bool `json:"is_dag"`
}

// Classify classifies the pipeline's nodes and edges.
func (p *Pipeline) Classify() (*Result, error) {
	return Classify(p.Nodes, p.Edges)
}

// PipelineRequest is the wire form of a Pipeline. Pointer fields tell a
// missing key apart from an empty string; only missing keys are rejected.
type PipelineRequest struct {
	Nodes []NodeRequest `json:"nodes" validate:"required,dive"`
	Edges []EdgeRequest `json:"edges" validate:"required,dive"`
}

type NodeRequest struct {
	ID *string `json:"id" validate:"required"`
}

type EdgeRequest struct {
	Source *string `json:"source" validate:"required"`
	Target *string `json:"target" validate:"required"`
}

// Pipeline converts a request that passed Validate. Absent fields become
// empty strings.
func (r *PipelineRequest) Pipeline() *Pipeline {
	p := &Pipeline{
		Nodes: make([]Node, len(r.Nodes)),
		Edges: make([]Edge, len(r.Edges)),
	}
	for i, n := range r.Nodes {
		p.Nodes[i] = Node{ID: deref(n.ID)}
	}
	for i, e := range r.Edges {
		p.Edges[i] = Edge{Source: deref(e.Source), Target: deref(e.Target)}
	}
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
