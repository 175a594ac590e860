package dagcheck

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []FieldError
	}{
		{
			name: "valid",
			body: `{"nodes":[{"id":"A"},{"id":"B"}],"edges":[{"source":"A","target":"B"}]}`,
		},
		{
			name: "empty arrays",
			body: `{"nodes":[],"edges":[]}`,
		},
		{
			name:   "missing nodes",
			body:   `{"edges":[]}`,
			fields: []FieldError{{Field: "nodes", Rule: "required"}},
		},
		{
			name: "missing both",
			body: `{}`,
			fields: []FieldError{
				{Field: "nodes", Rule: "required"},
				{Field: "edges", Rule: "required"},
			},
		},
		{
			name: "empty strings are valid ids",
			body: `{"nodes":[{"id":""},{"id":"A"}],"edges":[{"source":"","target":"A"}]}`,
		},
		{
			name:   "missing node id",
			body:   `{"nodes":[{"id":"A"},{}],"edges":[]}`,
			fields: []FieldError{{Field: "nodes[1].id", Rule: "required"}},
		},
		{
			name:   "null node id",
			body:   `{"nodes":[{"id":null}],"edges":[]}`,
			fields: []FieldError{{Field: "nodes[0].id", Rule: "required"}},
		},
		{
			name:   "edge without target",
			body:   `{"nodes":[{"id":"A"}],"edges":[{"source":"A"}]}`,
			fields: []FieldError{{Field: "edges[0].target", Rule: "required"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req PipelineRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := req.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidInput)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}

func TestPipelineRequest_Pipeline(t *testing.T) {
	var req PipelineRequest
	body := `{"nodes":[{"id":""},{"id":"A"}],"edges":[{"source":"","target":"A"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Validate())

	p := req.Pipeline()
	assert.Equal(t, []Node{{ID: ""}, {ID: "A"}}, p.Nodes)
	assert.Equal(t, []Edge{{Source: "", Target: "A"}}, p.Edges)

	res, err := p.Classify()
	require.NoError(t, err)
	assert.Equal(t, &Result{NumNodes: 2, NumEdges: 1, IsDAG: true}, res)
}

func TestPipelineRequest_PipelineEmpty(t *testing.T) {
	req := PipelineRequest{Nodes: []NodeRequest{}, Edges: []EdgeRequest{}}
	p := req.Pipeline()
	assert.NotNil(t, p.Nodes)
	assert.NotNil(t, p.Edges)
	assert.Empty(t, p.Nodes)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "nodes", Rule: "required"},
		{Field: "edges[2].source", Rule: "required"},
	}}
	assert.Equal(t, "dagcheck: invalid input: nodes: required, edges[2].source: required", err.Error())
}
