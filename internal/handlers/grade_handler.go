package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"resumatch/api/internal/services"
)

type GradeHandler struct {
	grader services.GraderService
}

func NewGradeHandler(grader services.GraderService) *GradeHandler {
	return &GradeHandler{grader: grader}
}

// HandleGradeJob handles POST /jobs/:id/grade: the whole session runs to
// completion and the updated matches come back in submission order.
func (h *GradeHandler) HandleGradeJob(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid or missing actor id",
		})
	}

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job id",
		})
	}

	results, err := h.grader.GradeJob(c.Context(), actor, jobID)
	if err != nil {
		return workflowError(c, err)
	}

	return c.JSON(fiber.Map{
		"job_id":  jobID,
		"results": results,
	})
}

// HandleGradeJobStream handles GET /jobs/:id/grade/stream as a server-sent
// event stream: one "batch" event per completed batch, in completion order.
// A client disconnect stops further dispatch while in-flight batches finish
// and persist.
func (h *GradeHandler) HandleGradeJobStream(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid or missing actor id",
		})
	}

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job id",
		})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		stop := make(chan struct{})

		emit := func(res services.BatchResult) error {
			data, err := json.Marshal(res)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "event: batch\ndata: %s\n\n", data); err != nil {
				close(stop)
				return err
			}
			// A flush failure is the disconnect signal: stop dispatching,
			// let in-flight batches finish.
			if err := w.Flush(); err != nil {
				close(stop)
				return err
			}
			return nil
		}

		// The request context dies with the handler; the session runs on its
		// own context so dispatched model calls may complete.
		if err := h.grader.GradeJobStream(context.Background(), actor, jobID, stop, emit); err != nil {
			fmt.Fprintf(w, "event: error\ndata: {\"error\": %q}\n\n", err.Error())
			w.Flush()
			return
		}

		fmt.Fprintf(w, "event: complete\ndata: {\"job_id\": %q}\n\n", jobID.String())
		w.Flush()
	}))

	return nil
}
