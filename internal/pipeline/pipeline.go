// Package pipeline warps every image of a directory with one recipe and
// records the run in a manifest.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/AnyUserName/matstudio/internal/encoder"
	"github.com/AnyUserName/matstudio/internal/manifest"
	"github.com/AnyUserName/matstudio/internal/recipe"
	"github.com/AnyUserName/matstudio/internal/warp"
)

// Config holds all parameters for a batch run.
type Config struct {
	InputDir  string
	OutputDir string

	// RecipeName is recorded in the manifest; Plan is what gets applied.
	RecipeName string
	Plan       recipe.Plan

	// Format names the output encoder; empty means png.
	Format  string
	Quality int

	// Workers bounds how many images are processed at once. Engine.Workers
	// splits each image's rows further.
	Workers int
	Engine  warp.Engine

	// PreviewWidth, when positive, adds a downscaled copy per image.
	PreviewWidth int

	Logger *log.Logger
}

// Pipeline orchestrates batch warping.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
	}
}

// Run processes every image under InputDir and returns the manifest.
// Individual failures are logged and counted; Run fails only when no
// image could be processed or ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	logger := p.cfg.Logger
	logger.Debug(p.registry.String())

	enc, err := p.registry.Resolve(p.cfg.Format)
	if err != nil {
		return nil, err
	}

	sources, err := ScanImages(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	logger.Info("scanned input", "dir", p.cfg.InputDir, "images", len(sources))

	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[idx] = processResult{key: s.Key, err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			logger.Debug("warping", "key", s.Key)
			results[idx] = processImage(s, p.cfg, enc)
			if r := results[idx]; r.err == nil {
				logger.Debug("done", "key", s.Key, "size", fmt.Sprintf("%dx%d", r.asset.Output.Width, r.asset.Output.Height), "degenerate", r.asset.Degenerate)
			}
		}(i, src)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := manifest.New(p.cfg.RecipeName)
	m.Transform = transformInfo(p.cfg.Plan)

	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			logger.Error("image failed", "key", r.key, "err", r.err)
			continue
		}
		if r.asset.Degenerate {
			logger.Warn("degenerate matrix, output is transparent", "key", r.key)
		}
		m.Assets[r.key] = r.asset
	}
	if failed == len(sources) {
		return nil, fmt.Errorf("all %d images failed to process", failed)
	}
	if failed > 0 {
		logger.Warn("partial failure", "failed", failed, "total", len(sources))
	}

	m.RunInfo = &manifest.RunInfo{
		Workers:     p.cfg.Workers,
		BandWorkers: p.cfg.Engine.Workers,
		Format:      enc.Format(),
		Quality:     p.cfg.Quality,
		PreviewW:    p.cfg.PreviewWidth,
	}
	m.Stats.Failed = failed
	m.ComputeStats()
	return m, nil
}

func transformInfo(plan recipe.Plan) manifest.Transform {
	t := manifest.Transform{
		Params: manifest.Params{
			ScaleX:  plan.Params.ScaleX,
			ScaleY:  plan.Params.ScaleY,
			Degrees: plan.Params.Degrees,
			ShearX:  plan.Params.ShearX,
			ShearY:  plan.Params.ShearY,
		},
	}
	for _, k := range plan.Order {
		t.Order = append(t.Order, k.String())
	}
	if plan.Matrix != nil {
		manual := [6]float64(*plan.Matrix)
		t.Manual = &manual
	}
	return t
}
