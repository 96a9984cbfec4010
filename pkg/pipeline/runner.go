package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridcompose/pkg/cache"
	"github.com/matzehuels/gridcompose/pkg/geometry"
	"github.com/matzehuels/gridcompose/pkg/grid"
	"github.com/matzehuels/gridcompose/pkg/observability"
)

// Runner encapsulates pipeline execution with caching. The CLI and the
// layout service share it.
//
// The Runner holds no per-run state; multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means the DefaultKeyer, a nil
// cache disables caching.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete parse → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Parse
	parseStart := time.Now()
	src, err := Parse(opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	opts.Items, opts.HasMore, opts.Width = src.Items, src.HasMore, src.Width
	result.Settings = src.Settings
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.ItemCount = len(src.Items)

	r.Logger.Info("parsed items",
		"items", len(src.Items),
		"has_more", src.HasMore,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	sections, layout, hash, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Sections = sections
	result.Layout = layout
	result.ItemsHash = hash
	result.Stats.SectionCount = len(sections)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"sections", len(layout.Sections),
		"width", layout.Width,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
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

// GenerateLayoutWithCacheInfo composes opts.Items and resolves their layout,
// reading and writing the layout cache. It returns the sections, the
// layout, the items hash and whether the layout came from cache.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, opts Options) ([]grid.Section, geometry.Layout, string, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, geometry.Layout{}, "", false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(opts.Items), opts.Width)
	start := time.Now()

	sections := Compose(opts.Items, opts.HasMore)
	hash := ItemsHash(opts.Items)
	cacheKey := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if l, ok := r.cachedLayout(ctx, cacheKey); ok {
			hooks.OnLayoutComplete(ctx, len(l.Sections), time.Since(start), nil)
			return sections, l, hash, true, nil
		}
	}

	layout, err := GenerateLayout(sections, opts)
	hooks.OnLayoutComplete(ctx, len(layout.Sections), time.Since(start), err)
	if err != nil {
		return nil, geometry.Layout{}, "", false, err
	}

	if data, err := geometry.MarshalLayout(layout); err == nil {
		r.store(ctx, cacheKey, data, cache.TTLLayout)
	}
	return sections, layout, hash, false, nil
}

// GenerateLayout composes and resolves without cache info.
func (r *Runner) GenerateLayout(ctx context.Context, opts Options) (geometry.Layout, error) {
	_, l, _, _, err := r.GenerateLayoutWithCacheInfo(ctx, opts)
	return l, err
}

func (r *Runner) cachedLayout(ctx context.Context, key string) (geometry.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("layout cache read failed", "error", err)
		return geometry.Layout{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, key)
		return geometry.Layout{}, false
	}
	l, err := geometry.UnmarshalLayout(data)
	if err != nil {
		r.Logger.Debug("discarding corrupt cached layout", "key", key, "error", err)
		observability.Cache().OnCacheMiss(ctx, key)
		return geometry.Layout{}, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	return l, true
}

// RenderWithCacheInfo generates artifacts with caching. The render is a hit
// only when every requested format is cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout geometry.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	layoutData, err := geometry.MarshalLayout(layout)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, key)
				break
			}
			observability.Cache().OnCacheHit(ctx, key)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
	}

	rendered, err := RenderFromLayout(ctx, layout, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.store(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without cache info.
func (r *Runner) Render(ctx context.Context, layout geometry.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

func (r *Runner) store(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
