package ai

import (
	"context"
	"io"
	"strings"
)

// ScriptedPlanner replays a canned plan as a short stream of chunks. It
// serves local development without an API key and keeps the end-to-end tests
// off the network.
type ScriptedPlanner struct {
	Plan string
}

func NewScriptedPlanner(plan string) *ScriptedPlanner {
	if plan == "" {
		plan = "Your growth plan: keep leading, keep learning, and revisit this assessment in 90 days."
	}
	return &ScriptedPlanner{Plan: plan}
}

func (p *ScriptedPlanner) StreamPlan(_ context.Context, _ PlanRequest) (PlanStream, error) {
	return &scriptedStream{chunks: strings.SplitAfter(p.Plan, " ")}, nil
}

type scriptedStream struct {
	chunks []string
	next   int
}

func (s *scriptedStream) Recv() (string, error) {
	if s.next >= len(s.chunks) {
		return "", io.EOF
	}
	chunk := s.chunks[s.next]
	s.next++
	return chunk, nil
}

func (s *scriptedStream) Close() error {
	return nil
}
