package dagcheck

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedGraph = errors.New("dagcheck: malformed graph")
	ErrInvalidInput   = errors.New("dagcheck: invalid input")
)

// Reasons reported by MalformedGraphError.
const (
	ReasonDuplicateNode = "duplicate_node"
	ReasonUnknownSource = "unknown_source"
	ReasonUnknownTarget = "unknown_target"
)

// MalformedGraphError reports a graph whose edges or nodes are inconsistent.
// Edge is -1 when the problem is with the node set itself.
type MalformedGraphError struct {
	Reason string
	NodeID string
	Edge   int
}

func (e *MalformedGraphError) Error() string {
	switch e.Reason {
	case ReasonDuplicateNode:
		return fmt.Sprintf("dagcheck: duplicate node %q", e.NodeID)
	case ReasonUnknownSource:
		return fmt.Sprintf("dagcheck: edge %d references undeclared source node %q", e.Edge, e.NodeID)
	case ReasonUnknownTarget:
		return fmt.Sprintf("dagcheck: edge %d references undeclared target node %q", e.Edge, e.NodeID)
	}
	return fmt.Sprintf("dagcheck: malformed graph at node %q", e.NodeID)
}

// Is makes errors.Is(err, ErrMalformedGraph) hold for every MalformedGraphError.
func (e *MalformedGraphError) Is(target error) bool {
	return target == ErrMalformedGraph
}

// FieldError is a single failed validation rule on a request field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError lists every field of a request that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Rule)
	}
	return "dagcheck: invalid input: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
