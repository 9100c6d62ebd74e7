package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/RaheesAhmed/growthcompass/internal/ai"
	"github.com/RaheesAhmed/growthcompass/internal/assessment"
	"github.com/RaheesAhmed/growthcompass/internal/errors"
	"github.com/RaheesAhmed/growthcompass/internal/repositories"
	"github.com/google/uuid"
)

const fallbackPlan = "We could not generate your growth plan right now. " +
	"Your responses are saved, please check back later."

// generatePlan finalizes a completed questionnaire: it persists the
// responses, kicks off plan generation in the background, and sends the
// respondent to the plan page where the text streams in.
func (app *application) generatePlan(w http.ResponseWriter, r *http.Request) {
	sessionID := app.currentSessionID(r)
	if sessionID == "" {
		http.Redirect(w, r, "/classify", http.StatusSeeOther)
		return
	}

	var req ai.PlanRequest
	err := app.sessions.Do(sessionID, func(s *assessment.Session) error {
		records, err := s.Responses()
		if err != nil {
			return err
		}
		req = ai.PlanRequest{
			RoleName:   s.Role(),
			LevelIndex: s.LevelIndex(),
			Records:    records,
		}
		return nil
	})
	switch {
	case errors.Is(err, assessment.ErrNotComplete):
		http.Redirect(w, r, "/assessment", http.StatusSeeOther)
		return
	case errors.Is(err, assessment.ErrSessionNotFound):
		app.sessionManager.Remove(r.Context(), assessmentSessionKey)
		http.Redirect(w, r, "/classify", http.StatusSeeOther)
		return
	case err != nil:
		app.serverError(w, r, errors.Wrap(err, "collect responses"))
		return
	}

	assessmentID := uuid.NewString()
	if err = app.assessments.Save(r.Context(), assessmentID, req.RoleName, req.LevelIndex, req.Records); err != nil {
		app.serverError(w, r, errors.Wrap(err, "save assessment"))
		return
	}

	// The questionnaire session has served its purpose.
	app.sessions.Delete(sessionID)
	app.sessionManager.Remove(r.Context(), assessmentSessionKey)
	app.sessionManager.Put(r.Context(), latestAssessmentKey, assessmentID)

	go app.producePlan(assessmentID, req)

	http.Redirect(w, r, fmt.Sprintf("/plan/%s", assessmentID), http.StatusSeeOther)
}

// producePlan streams the plan from the generator to the broker and persists
// the full text at the end. It runs detached from the originating request.
func (app *application) producePlan(assessmentID string, req ai.PlanRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	stream := make(chan string)
	app.planBroker.Publish(assessmentID, stream)
	defer app.planBroker.Unpublish(assessmentID)
	defer close(stream)

	planStream, err := app.planner.StreamPlan(ctx, req)
	if err != nil {
		err = errors.Wrap(err, "start plan stream")
		app.logger.LogAttrs(ctx, slog.LevelError, "plan generation failed",
			slog.String("assessmentID", assessmentID), errors.SlogError(err))
		app.savePlan(ctx, assessmentID, fallbackPlan)
		return
	}
	defer func() {
		_ = planStream.Close()
	}()

	var full strings.Builder
	consumerLost := false
	for {
		var chunk string
		if chunk, err = planStream.Recv(); err != nil {
			if !errors.Is(err, io.EOF) {
				err = errors.Wrap(err, "receive plan chunk")
				app.logger.LogAttrs(ctx, slog.LevelError, "plan stream interrupted",
					slog.String("assessmentID", assessmentID), errors.SlogError(err))
			}
			break
		}
		full.WriteString(chunk)
		if consumerLost {
			continue
		}
		select {
		case stream <- chunk:
		case <-time.After(10 * time.Second):
			// Nobody is reading. Keep generating so the plan still gets
			// persisted.
			consumerLost = true
		case <-ctx.Done():
			consumerLost = true
		}
	}

	plan := full.String()
	if plan == "" {
		plan = fallbackPlan
	}
	app.savePlan(ctx, assessmentID, plan)
}

func (app *application) savePlan(ctx context.Context, assessmentID, plan string) {
	if err := app.assessments.SavePlan(ctx, assessmentID, plan); err != nil {
		err = errors.Wrap(err, "persist plan")
		app.logger.LogAttrs(ctx, slog.LevelError, "could not persist plan",
			slog.String("assessmentID", assessmentID), errors.SlogError(err))
	}
}

type planTemplateData struct {
	ID       string
	RoleName string
	Plan     string
}

func (app *application) planPage(w http.ResponseWriter, r *http.Request) {
	assessmentID := r.PathValue("assessmentID")
	saved, err := app.assessments.Get(r.Context(), assessmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrAssessmentNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, errors.Wrap(err, "get assessment"))
		return
	}

	app.render(w, r, http.StatusOK, "plan", planTemplateData{
		ID:       saved.ID,
		RoleName: saved.RoleName,
		Plan:     saved.Plan,
	})
}

// planStream serves the plan as Server-Sent Events. The first subscriber
// receives the generation live; later subscribers wait for the producer to
// finish and get the persisted text in one piece.
func (app *application) planStream(w http.ResponseWriter, r *http.Request) {
	assessmentID := r.PathValue("assessmentID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		app.serverError(w, r, errors.New("response writer does not support flushing"))
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	producer, live := <-app.planBroker.Subscribe(assessmentID)
	if !live {
		// Generation is done or never started: serve the persisted plan.
		saved, err := app.assessments.Get(r.Context(), assessmentID)
		if err != nil {
			if errors.Is(err, repositories.ErrAssessmentNotFound) {
				app.notFound(w, r)
				return
			}
			app.serverError(w, r, errors.Wrap(err, "get assessment"))
			return
		}
		if err = writeSSEChunk(w, flusher, saved.Plan); err != nil {
			return
		}
		writeSSEDone(w, flusher)
		return
	}

	for {
		select {
		case chunk, open := <-producer:
			if !open {
				writeSSEDone(w, flusher)
				return
			}
			if err := writeSSEChunk(w, flusher, chunk); err != nil {
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}

// writeSSEChunk sends one text chunk as an SSE message. The chunk is JSON
// encoded so newlines survive the event framing.
func writeSSEChunk(w io.Writer, flusher http.Flusher, chunk string) error {
	data, err := json.Marshal(chunk)
	if err != nil {
		return errors.Wrap(err, "marshal chunk")
	}
	if _, err = fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return errors.Wrap(err, "write chunk")
	}
	flusher.Flush()
	return nil
}

func writeSSEDone(w io.Writer, flusher http.Flusher) {
	_, _ = fmt.Fprint(w, "event: done\ndata: \"\"\n\n")
	flusher.Flush()
}
