// Package ai generates the personalized growth plan from a completed
// assessment, streaming the text as it is produced.
package ai

import (
	"context"

	"github.com/RaheesAhmed/growthcompass/internal/assessment"
	"github.com/RaheesAhmed/growthcompass/internal/errors"
	"github.com/sashabaranov/go-openai"
)

// PlanRequest carries everything the plan generator needs: the classified
// role and the aggregated questionnaire responses.
type PlanRequest struct {
	RoleName   string
	LevelIndex int
	Records    []assessment.Record
}

// PlanStream yields the plan text chunk by chunk. Recv returns io.EOF when
// the plan is complete.
type PlanStream interface {
	Recv() (string, error)
	Close() error
}

// Planner produces a growth plan as a stream of text chunks.
type Planner interface {
	StreamPlan(ctx context.Context, req PlanRequest) (PlanStream, error)
}

// Client is the OpenAI-backed Planner.
type Client struct {
	client *openai.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		client: openai.NewClient(apiKey),
	}
}

const maxTokens = 4096

func (c *Client) StreamPlan(ctx context.Context, req PlanRequest) (PlanStream, error) {
	stream, err := c.client.CreateChatCompletionStream(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     openai.GPT4,
			MaxTokens: maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: BuildPrompt(req),
				},
			},
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "create chat completion stream")
	}
	return &openaiStream{stream: stream}, nil
}

type openaiStream struct {
	stream *openai.ChatCompletionStream
}

// Recv unwraps the completion delta. go-openai surfaces io.EOF at the end of
// the stream, which is passed through untouched.
func (s *openaiStream) Recv() (string, error) {
	response, err := s.stream.Recv()
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", nil
	}
	return response.Choices[0].Delta.Content, nil
}

func (s *openaiStream) Close() error {
	s.stream.Close()
	return nil
}
