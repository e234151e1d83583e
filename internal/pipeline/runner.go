package pipeline

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/ironsheep/sentiment-image-mcp/internal/field"
	"github.com/ironsheep/sentiment-image-mcp/internal/lexicon"
	"github.com/ironsheep/sentiment-image-mcp/internal/logging"
)

// Runner scores text and synthesizes its field. It holds no per-request
// state; one Runner may serve many goroutines.
type Runner struct {
	Analyzer *lexicon.Analyzer
	Params   field.Params
	Cache    *FieldCache
	Logger   *log.Logger

	group singleflight.Group
}

// Result is a synthesized field and the score statistics of its source.
type Result struct {
	Field    *field.Field
	Summary  lexicon.Summary
	CacheHit bool
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// falls back to log.Default().
func NewRunner(a *lexicon.Analyzer, p field.Params, c *FieldCache, logger *log.Logger) *Runner {
	if c == nil {
		c = NewFieldCache(0)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Analyzer: a, Params: p, Cache: c, Logger: logger}
}

// Synthesize tokenizes and scores text, then builds its field. Text without
// any words yields field.ErrEmptyInput.
func (r *Runner) Synthesize(ctx context.Context, text string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := r.Analyzer.Tokens(text)
	summary := lexicon.Summarize(tokens)

	if f, ok := r.Cache.Get(text); ok {
		r.logger(ctx).Debug("field cache hit", "tokens", summary.Count)
		return &Result{Field: f, Summary: summary, CacheHit: true}, nil
	}

	v, err, _ := r.group.Do(text, func() (any, error) {
		return r.synthesize(ctx, tokens, summary)
	})
	if err != nil {
		return nil, err
	}
	f := v.(*field.Field)
	r.Cache.Put(text, f)
	return &Result{Field: f, Summary: summary}, nil
}

func (r *Runner) synthesize(ctx context.Context, tokens []field.Token, summary lexicon.Summary) (*field.Field, error) {
	l := r.logger(ctx)
	l.Debug("scored tokens",
		"count", summary.Count,
		"min", summary.Min,
		"max", summary.Max,
		"unique", summary.Unique,
		"zero_share", summary.ZeroShare)

	p := logging.Start(l)
	f, err := field.Synthesize(tokens, r.Params)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	p.Done("synthesized field",
		"width", f.Width,
		"height", f.Height,
		"anchors", f.Stats.Anchors,
		"negative_anchors", f.Stats.NegativeAnchors,
		"followers", f.Stats.Followers,
		"influenced", f.Stats.Influenced,
		"batches", f.Stats.Batches)
	return f, nil
}

// logger prefers a logger carried by ctx over the runner's own.
func (r *Runner) logger(ctx context.Context) *log.Logger {
	if l := logging.FromContext(ctx); l != log.Default() {
		return l
	}
	return r.Logger
}
