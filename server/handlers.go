package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/meikuraledutech/dagcheck"
)

// parsePipeline classifies the posted graph.
//
//	400 body is not JSON, or a field has the wrong JSON type
//	422 keys missing, or edges reference undeclared / duplicate nodes
//	200 {"num_nodes", "num_edges", "is_dag"}
func (h *handler) parsePipeline(c fiber.Ctx) error {
	var req dagcheck.PipelineRequest
	if err := c.Bind().JSON(&req); err != nil {
		h.metrics.outcome(outcomeInvalid)
		h.record(c, &dagcheck.Record{}, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if err := req.Validate(); err != nil {
		h.metrics.outcome(outcomeInvalid)
		h.record(c, &dagcheck.Record{NumNodes: len(req.Nodes), NumEdges: len(req.Edges)}, err)

		var verr *dagcheck.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "invalid input",
				"fields": verr.Fields,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	p := req.Pipeline()
	start := time.Now()
	res, err := p.Classify()
	h.metrics.classifyDuration.Observe(time.Since(start).Seconds())
	h.metrics.graphNodes.Observe(float64(len(p.Nodes)))

	rec := &dagcheck.Record{NumNodes: len(p.Nodes), NumEdges: len(p.Edges)}
	if res != nil {
		rec.IsDAG = res.IsDAG
	}
	h.record(c, rec, err)

	if errors.Is(err, dagcheck.ErrMalformedGraph) {
		h.metrics.outcome(outcomeMalformed)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if res.IsDAG {
		h.metrics.outcome(outcomeDAG)
	} else {
		h.metrics.outcome(outcomeCyclic)
	}
	return c.JSON(res)
}

// record writes an audit entry for every outcome when a recorder is
// configured, including bodies that failed to bind. Failures are logged and
// never change the response.
func (h *handler) record(c fiber.Ctx, rec *dagcheck.Record, cause error) {
	if h.recorder == nil {
		return
	}

	rec.RequestID = requestid.FromContext(c)
	if cause != nil {
		rec.Error = cause.Error()
	}

	if _, err := h.recorder.Record(c.Context(), rec); err != nil {
		h.logger.Warn("failed to record classification", "request_id", rec.RequestID, "err", err)
	}
}

func (h *handler) listRecords(c fiber.Ctx) error {
	limit := fiber.Query[int](c, "limit", h.recordLimit)
	if limit <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be positive"})
	}
	limit = min(limit, h.recordLimit)

	records, err := h.recorder.ListRecords(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(records)
}

func (h *handler) getRecord(c fiber.Ctx) error {
	rec, err := h.recorder.GetRecord(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "record not found"})
	}
	return c.JSON(rec)
}
