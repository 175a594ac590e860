package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/meikuraledutech/dagcheck"
)

func main() {
	// ── Onboarding form: a branching flow with a shared final step ─────
	form := &dagcheck.Pipeline{
		Nodes: []dagcheck.Node{{ID: "role"}, {ID: "language"}, {ID: "design-tool"}, {ID: "experience"}},
		Edges: []dagcheck.Edge{
			{Source: "role", Target: "language"},
			{Source: "role", Target: "design-tool"},
			{Source: "language", Target: "experience"},
			{Source: "design-tool", Target: "experience"},
		},
	}
	res, err := form.Classify()
	if err != nil {
		log.Fatalf("classify: %v", err)
	}
	fmt.Println("onboarding form:")
	printJSON(res)

	// ── Loop back to the start ────────────────────────────────────────
	form.Edges = append(form.Edges, dagcheck.Edge{Source: "experience", Target: "role"})
	res, err = form.Classify()
	if err != nil {
		log.Fatalf("classify: %v", err)
	}
	fmt.Println("\nwith a loop back to role:")
	printJSON(res)

	// ── Edge to a node that was never declared ────────────────────────
	broken := &dagcheck.Pipeline{
		Nodes: []dagcheck.Node{{ID: "role"}},
		Edges: []dagcheck.Edge{{Source: "role", Target: "salary"}},
	}
	_, err = broken.Classify()
	var merr *dagcheck.MalformedGraphError
	if errors.As(err, &merr) {
		fmt.Printf("\nrejected: %v (reason %s)\n", err, merr.Reason)
	}
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
