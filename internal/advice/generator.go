// Package advice turns mood statistics into a short natural-language
// suggestion by walking an ordered list of language models until one
// answers. It never returns an error: every failure path yields a fixed,
// localized message with Generated set to false.
package advice

import (
	"context"
	"strings"
	"time"

	"github.com/moodjournal/mood-api/internal/config"
	"github.com/moodjournal/mood-api/internal/domain"
	"github.com/moodjournal/mood-api/internal/pkg/logger"
)

const defaultAttemptTimeout = 15 * time.Second

// Completer sends a single prompt to a single model.
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// Request describes the window a suggestion is generated for.
type Request struct {
	Stats    domain.PeriodStats
	Start    time.Time
	End      time.Time
	Language string
}

// Result is the suggestion text. Generated is true only when a model
// produced it; fixed fallback messages have Generated == false and must not
// be cached.
type Result struct {
	Text      string
	Generated bool
	Model     string
}

// Generator builds prompts and runs the model fallback chain.
type Generator struct {
	models  []string
	timeout time.Duration
	lang    string
	hasKey  bool
	chat    Completer
	bedrock Completer
	prompts *promptSet
}

// Option customizes a Generator.
type Option func(*Generator)

// WithChatCompleter replaces the OpenAI-compatible client.
func WithChatCompleter(c Completer) Option {
	return func(g *Generator) { g.chat = c }
}

// WithBedrock enables "bedrock:"-prefixed models.
func WithBedrock(c Completer) Option {
	return func(g *Generator) { g.bedrock = c }
}

// New creates a Generator from explicit configuration. The chat client
// defaults to a ChatClient for cfg.BaseURL with cfg.MaxRetries retries.
func New(cfg config.LLMConfig, opts ...Option) (*Generator, error) {
	prompts, err := newPromptSet(cfg.PromptTemplates)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		models:  append([]string(nil), cfg.Models...),
		timeout: cfg.Timeout(),
		lang:    normalizeLanguage(cfg.DefaultLanguage, "en"),
		hasKey:  cfg.APIKey != "",
		prompts: prompts,
	}
	if g.timeout <= 0 {
		g.timeout = defaultAttemptTimeout
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.chat == nil {
		g.chat = NewChatClient(cfg.BaseURL, cfg.APIKey, newHTTPDoer(cfg)).
			WithAttribution(cfg.Referer, cfg.AppTitle)
	}
	return g, nil
}

// Generate produces advice for a window.
func (g *Generator) Generate(ctx context.Context, req Request) Result {
	lang := normalizeLanguage(req.Language, g.lang)
	msg := messagesFor(lang)

	if req.Stats.EntryCount == 0 {
		return Result{Text: msg.NoData}
	}
	if !g.configured() {
		logger.Warn("advice: no model credentials configured")
		return Result{Text: msg.NotConfigured}
	}

	prompt, err := g.prompts.renderSummary(lang, req.Stats, req.Start, req.End)
	if err != nil {
		logger.Error("advice: prompt rendering failed", "error", err)
		return Result{Text: msg.Failed}
	}

	if text, model, ok := g.run(ctx, prompt); ok {
		return Result{Text: text, Generated: true, Model: model}
	}
	return Result{Text: msg.Failed}
}

// Analyze reflects on a single journal entry. It shares the model chain with
// Generate but its output is never cached.
func (g *Generator) Analyze(ctx context.Context, text, previousContext, language string) Result {
	lang := normalizeLanguage(language, g.lang)
	msg := messagesFor(lang)

	if !g.configured() {
		return Result{Text: msg.NotConfigured}
	}
	prompt, err := g.prompts.renderAnalysis(lang, text, previousContext)
	if err != nil {
		logger.Error("advice: prompt rendering failed", "error", err)
		return Result{Text: msg.Failed}
	}
	if out, model, ok := g.run(ctx, prompt); ok {
		return Result{Text: out, Generated: true, Model: model}
	}
	return Result{Text: msg.Failed}
}

// configured reports whether at least one provider can be called.
func (g *Generator) configured() bool {
	return g.hasKey || g.bedrock != nil
}

// run tries each model in priority order, one bounded attempt each, and
// returns the first non-empty answer.
func (g *Generator) run(ctx context.Context, prompt string) (string, string, bool) {
	for i, model := range g.models {
		start := time.Now()
		text, err := g.attempt(ctx, model, prompt)
		if err == nil {
			text = strings.TrimSpace(text)
		}
		if err == nil && text != "" {
			logger.Info("advice: model succeeded", "model", model, "attempt", i+1, "latency", time.Since(start))
			return text, model, true
		}
		if err == nil {
			err = errEmptyCompletion
		}
		logger.Warn("advice: model failed, trying next",
			"model", model, "attempt", i+1, "of", len(g.models),
			"latency", time.Since(start), "error", err)

		if ctx.Err() != nil {
			break
		}
	}
	logger.Error("advice: all models failed", "models", len(g.models))
	return "", "", false
}

func (g *Generator) attempt(ctx context.Context, model, prompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if id, ok := strings.CutPrefix(model, BedrockPrefix); ok {
		if g.bedrock == nil {
			return "", errBedrockDisabled
		}
		return g.bedrock.Complete(attemptCtx, id, prompt)
	}
	return g.chat.Complete(attemptCtx, model, prompt)
}
