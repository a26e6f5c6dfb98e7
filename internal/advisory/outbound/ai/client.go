// Package ai generates crop guidance through an OpenAI-compatible chat API.
package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dailyvegies/api/internal/pkg/instrument"
)

type Client struct {
	client *openai.Client
	model  string
	ins    instrument.Instrumentation
}

// NewClient builds a chat client. baseURL may be empty to use the default
// OpenAI endpoint, or point at any compatible server.
func NewClient(apiKey, baseURL, model string, ins instrument.Instrumentation) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Client{client: openai.NewClientWithConfig(cfg), model: model, ins: ins}
}

// Ask sends one system+user exchange and returns the model's reply.
func (c *Client) Ask(ctx context.Context, system, prompt string) (answer string, err error) {
	ctx, span := c.startSpan(ctx, "Ask")
	defer func() { c.endSpan(span, err) }()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   700,
	})
	if err != nil {
		return "", fmt.Errorf("ai: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ai: empty completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *Client) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("advisory.outbound.ai").Start(ctx, name)
}

func (c *Client) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
