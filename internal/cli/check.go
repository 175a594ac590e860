package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/meikuraledutech/dagcheck"
	"github.com/spf13/cobra"
)

// errCyclic is returned by check --strict when the graph has a cycle.
var errCyclic = errors.New("graph contains a cycle")

func newCheckCmd(opts *options) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Classify a pipeline JSON file",
		Long: `Classify a pipeline JSON file ({"nodes": [...], "edges": [...]}) and
print {"num_nodes", "num_edges", "is_dag"}. Reads stdin when no file or "-"
is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runCheck(opts, path, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the graph contains a cycle")

	return cmd
}

func runCheck(opts *options, path string, strict bool) error {
	logger := opts.logger(log.WarnLevel)

	in := opts.stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	req, err := decodePipeline(in)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	res, err := req.Pipeline().Classify()
	if err != nil {
		return err
	}
	logger.Debug("classified", "source", path, "nodes", res.NumNodes, "edges", res.NumEdges, "is_dag", res.IsDAG)

	enc := json.NewEncoder(opts.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}

	if strict && !res.IsDAG {
		return errCyclic
	}
	return nil
}

// errTrailingData is returned when input continues after the pipeline object.
var errTrailingData = errors.New("unexpected data after pipeline")

// decodePipeline reads exactly one JSON value from r.
func decodePipeline(r io.Reader) (*dagcheck.PipelineRequest, error) {
	var req dagcheck.PipelineRequest
	dec := json.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errTrailingData
	}
	return &req, nil
}
