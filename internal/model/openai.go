package model

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIGenerator talks to an inference server exposing the OpenAI-compatible
// completions API (vLLM, TGI, llama.cpp server) that hosts the seq2seq model.
type OpenAIGenerator struct {
	client openai.Client
	model  string
}

// NewOpenAIGenerator builds a generator for model served at baseURL.
func NewOpenAIGenerator(baseURL, apiKey, modelName string, timeout time.Duration) *OpenAIGenerator {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OpenAIGenerator{
		client: openai.NewClient(
			option.WithBaseURL(strings.TrimRight(baseURL, "/")+"/"),
			option.WithAPIKey(apiKey),
			option.WithHTTPClient(&http.Client{Timeout: timeout}),
			option.WithMaxRetries(1),
		),
		model: modelName,
	}
}

// Generate runs one completion with deterministic decoding: greedy by default,
// beam search through vLLM's extension fields when NumBeams > 1. best_of is
// never sent since it samples candidates and vLLM rejects it under greedy decoding.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, p GenerateParams) (string, error) {
	params := openai.CompletionNewParams{
		Model:       openai.CompletionNewParamsModel(g.model),
		Prompt:      openai.CompletionNewParamsPromptUnion{OfString: openai.String(prompt)},
		MaxTokens:   openai.Int(p.MaxTokens),
		Temperature: openai.Float(0),
	}
	var opts []option.RequestOption
	if p.NumBeams > 1 {
		opts = append(opts,
			option.WithJSONSet("use_beam_search", true),
			option.WithJSONSet("beam_width", p.NumBeams),
		)
	}
	resp, err := g.client.Completions.New(ctx, params, opts...)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyOutput
	}
	return resp.Choices[0].Text, nil
}

// Probe lists the served models and checks ours is among them.
func (g *OpenAIGenerator) Probe(ctx context.Context) error {
	page, err := g.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	for _, m := range page.Data {
		if m.ID == g.model {
			return nil
		}
	}
	return fmt.Errorf("model %q not served", g.model)
}
