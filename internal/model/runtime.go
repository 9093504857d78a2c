package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gogotex/gogotex/backend/go-simplifier/internal/config"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/logger"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/metrics"
)

// Compute devices a runtime can be bound to.
const (
	CPU  = "cpu"
	CUDA = "cuda"
)

var (
	ErrEmptyInput  = errors.New("model: input text is empty")
	ErrEmptyOutput = errors.New("model: generation returned no text")
)

const probeTimeout = 5 * time.Second

// GenerateParams are the decoding parameters sent with every generation.
// NumBeams of 1 means greedy decoding.
type GenerateParams struct {
	MaxTokens int64
	NumBeams  int64
}

// Generator runs text generation against a served model.
type Generator interface {
	Generate(ctx context.Context, prompt string, p GenerateParams) (string, error)
	// Probe returns nil when the backend serves the model.
	Probe(ctx context.Context) error
}

// Runtime is the process-wide handle on the pretrained model. It is built once
// at startup and is read-only afterwards, so it can be shared across requests.
type Runtime struct {
	name   string
	device string
	prefix string
	params GenerateParams
	gen    Generator
}

// NewRuntime builds a runtime around an already selected generator.
func NewRuntime(name, device, prefix string, params GenerateParams, gen Generator) *Runtime {
	return &Runtime{name: name, device: device, prefix: prefix, params: params, gen: gen}
}

// Load binds the configured model, preferring the accelerated endpoint when it
// serves the model and falling back to the general one otherwise.
func Load(ctx context.Context, cfg config.ModelConfig) (*Runtime, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("load model: empty model name")
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("load model %s: no inference endpoint configured", cfg.Name)
	}
	general := NewOpenAIGenerator(cfg.URL, cfg.APIKey, cfg.Name, cfg.Timeout)
	var accelerated Generator
	if cfg.AcceleratedURL != "" {
		accelerated = NewOpenAIGenerator(cfg.AcceleratedURL, cfg.APIKey, cfg.Name, cfg.Timeout)
	}
	gen, device := SelectDevice(ctx, cfg.Name, accelerated, general)
	params := GenerateParams{MaxTokens: cfg.MaxTokens, NumBeams: cfg.NumBeams}
	logger.Infof("model %s loaded on %s (max_tokens=%d beams=%d)", cfg.Name, device, params.MaxTokens, params.NumBeams)
	return NewRuntime(cfg.Name, device, cfg.TaskPrefix, params, gen), nil
}

// SelectDevice returns the accelerated generator when it answers the probe,
// otherwise the general one. accelerated may be nil.
func SelectDevice(ctx context.Context, name string, accelerated, general Generator) (Generator, string) {
	if accelerated != nil {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := accelerated.Probe(pctx)
		cancel()
		if err == nil {
			return accelerated, CUDA
		}
		logger.Warnf("accelerated backend unavailable for %s, using %s: %v", name, CPU, err)
	}
	pctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := general.Probe(pctx); err != nil {
		// generation errors will surface per request
		logger.Warnf("general backend did not confirm model %s: %v", name, err)
	}
	return general, CPU
}

// Simplify rewrites text through the model and returns the decoded output.
func (r *Runtime) Simplify(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", ErrEmptyInput
	}
	start := time.Now()
	out, err := r.gen.Generate(ctx, r.prefix+text, r.params)
	metrics.InferenceDuration.WithLabelValues(r.device).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("generate with %s: %w", r.name, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmptyOutput
	}
	return out, nil
}

// Ping checks that the selected endpoint still serves the model.
func (r *Runtime) Ping(ctx context.Context) error {
	return r.gen.Probe(ctx)
}

func (r *Runtime) Name() string   { return r.name }
func (r *Runtime) Device() string { return r.device }
