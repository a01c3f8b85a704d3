package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lturtle/pkg/cache"
	"github.com/matzehuels/lturtle/pkg/errors"
	"github.com/matzehuels/lturtle/pkg/lsystem"
	"github.com/matzehuels/lturtle/pkg/observability"
	"github.com/matzehuels/lturtle/pkg/turtle"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-stage cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → interpret → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Generate
	genStart := time.Now()
	program, genHit, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Program = program
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.Symbols = len(program)
	result.CacheInfo.GenerateHit = genHit

	r.Logger.Info("generated program",
		"generations", opts.Generations,
		"symbols", result.Stats.Symbols,
		"cached", genHit,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Interpret
	interpStart := time.Now()
	segs := Interpret(program, opts)
	result.Segments = segs
	result.Stats.InterpretTime = time.Since(interpStart)
	result.Stats.Segments = len(segs)
	observability.Pipeline().OnInterpretComplete(ctx, len(segs), result.Stats.InterpretTime)

	r.Logger.Info("interpreted program",
		"segments", len(segs),
		"duration", result.Stats.InterpretTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.Render(ctx, segs, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate rewrites the axiom and reports whether the result came from the
// cache. A result longer than MaxLength fails with TOO_LARGE.
func (r *Runner) Generate(ctx context.Context, opts Options) (string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return "", false, err
	}

	sys := opts.System()
	cacheKey := r.Keyer.ProgramKey(systemHash(sys), opts.ProgramKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "program")
			return string(data), true, nil
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "program")
	}

	observability.Pipeline().OnGenerateStart(ctx, sys.Axiom, sys.Generations)
	start := time.Now()
	program, err := sys.GenerateContext(ctx, opts.MaxLength)
	observability.Pipeline().OnGenerateComplete(ctx, len(program), time.Since(start), err)
	if stderrors.Is(err, lsystem.ErrTooLong) {
		return "", false, errors.Wrap(errors.ErrCodeTooLarge, err, "program exceeds %d bytes", opts.MaxLength)
	}
	if err != nil {
		return "", false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, []byte(program), r.ttl(cache.TTLProgram)); err != nil {
		opts.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "program", len(program))
	}

	return program, false, nil
}

// Render draws segs in every requested format, reusing cached artifacts when
// all formats are cached. It reports whether the result came from the cache.
func (r *Runner) Render(ctx context.Context, segs []turtle.Segment, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hash := drawingHash(segs)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderSegments(segs, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLArtifact)); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
