package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/NomadCrew/nomad-crew-itinerary/config"
	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/sashabaranov/go-openai"
)

// OpenAIClient drives any OpenAI-compatible chat completions endpoint
// (NVIDIA, Ollama, DashScope, OpenAI itself).
type OpenAIClient struct {
	client      *openai.Client
	provider    string
	model       string
	temperature float32
}

// NewOpenAIClient builds a client for ep. httpClient may be nil.
func NewOpenAIClient(ep config.LLMEndpoint, temperature float32, httpClient *http.Client) *OpenAIClient {
	cfg := openai.DefaultConfig(ep.APIKey)
	cfg.BaseURL = strings.TrimRight(ep.BaseURL, "/")
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		provider:    ep.Provider,
		model:       ep.Model,
		temperature: temperature,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	log := logger.GetLogger()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.provider, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}

	log.Debugw("LLM completion received",
		"provider", c.provider,
		"model", c.model,
		"promptTokens", resp.Usage.PromptTokens,
		"completionTokens", resp.Usage.CompletionTokens,
		"finishReason", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Provider() string { return c.provider }
func (c *OpenAIClient) Model() string    { return c.model }
func (c *OpenAIClient) Close() error     { return nil }
