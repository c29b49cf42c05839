package pipeline

import (
	"context"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/spritepack/pkg/cache"
	"github.com/matzehuels/spritepack/pkg/compose"
	"github.com/matzehuels/spritepack/pkg/emit"
	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/optimize"
	"github.com/matzehuels/spritepack/pkg/pack"
	"github.com/matzehuels/spritepack/pkg/source"
	"github.com/matzehuels/spritepack/pkg/sprite"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger

	// Provider and Sink default to the local filesystem implementations.
	Provider source.Provider
	Sink     source.Sink

	// OptimizerURL overrides the optimizer endpoint, mainly for tests.
	OptimizerURL string
}

// NewRunner creates a runner with the given cache and logger.
// If cache is nil, a NullCache is used (optimizer memoization disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → pack → compose → emit pipeline.
// Fatal errors abort the run before any output file is written; the sink
// writes happen last.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger.With("run", uuid.NewString()[:8])

	result := &Result{
		Descriptors: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	items, err := r.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ImageCount = len(items)
	result.Stats.LoadTime = time.Since(loadStart)

	logger.Info("loaded sprites",
		"count", len(items),
		"trim", opts.Trim,
		"duration", result.Stats.LoadTime)

	// Stage 2: Pack + Resolve
	packStart := time.Now()
	atlas, err := r.pack(items, opts)
	if err != nil {
		return nil, err
	}
	result.Plan = atlas.Plan
	result.Stats.PackTime = time.Since(packStart)
	result.Stats.FillRatio = atlas.FillRatio()

	logger.Info("packed atlas",
		"algorithm", opts.Algorithm,
		"canvas", atlas.Plan,
		"fill", result.Stats.FillRatio,
		"duration", result.Stats.PackTime)

	// Stage 3: Compose + optional optimize
	composeStart := time.Now()
	png, err := compose.EncodePNG(compose.Render(atlas))
	if err != nil {
		return nil, err
	}
	result.Atlas = png

	if opts.APIKey != "" {
		optimized, err := r.optimizeAtlas(ctx, png, opts)
		if err != nil {
			// Non-fatal: keep the unoptimized bytes.
			logger.Warn("optimizer failed, keeping unoptimized atlas", "err", err)
		} else {
			result.Atlas = optimized
			result.Stats.Optimized = true
		}
	}
	result.Stats.ComposeTime = time.Since(composeStart)

	logger.Info("composed atlas",
		"bytes", len(result.Atlas),
		"optimized", result.Stats.Optimized,
		"duration", result.Stats.ComposeTime)

	// Stage 4: Emit + write
	emitStart := time.Now()
	sheet := emit.BuildSheet(atlas, opts.Name, "png", emit.NameOptions{
		Prefix:   opts.Prefix,
		FullPath: opts.FullPath,
	})
	sheet.CSSOrder = opts.CSSOrder

	renderers, err := r.renderers(opts)
	if err != nil {
		return nil, err
	}
	for format, renderer := range renderers {
		data, err := renderer.Render(sheet)
		if err != nil {
			return nil, err
		}
		result.Descriptors[format] = data
	}

	// All fatal work is done; the writes below are the run's only side
	// effects.
	path, err := r.Sink.Write(opts.OutDir, opts.Name, "png", result.Atlas)
	if err != nil {
		return nil, err
	}
	result.Paths = append(result.Paths, path)

	for format, data := range result.Descriptors {
		path, err := r.Sink.Write(opts.OutDir, opts.Name, renderers[format].Ext(), data)
		if err != nil {
			return nil, err
		}
		result.Paths = append(result.Paths, path)
	}
	result.Stats.EmitTime = time.Since(emitStart)

	logger.Info("emitted descriptors",
		"formats", len(result.Descriptors),
		"out", opts.OutDir,
		"duration", result.Stats.EmitTime)

	return result, nil
}

// load decodes, scales, and trims every source image. Per-image work is
// independent, so it runs in parallel, bounded to one worker per CPU.
func (r *Runner) load(ctx context.Context, opts Options) ([]sprite.Item, error) {
	names, err := r.Provider.List(opts.SrcDir, opts.Ext)
	if err != nil {
		return nil, err
	}

	items := make([]sprite.Item, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := r.Provider.Load(opts.SrcDir, name)
			if err != nil {
				return err
			}
			if opts.Scale != 100 {
				img.RGBA = sprite.Scale(img.RGBA, opts.Scale)
				img.Width = img.RGBA.Bounds().Dx()
				img.Height = img.RGBA.Bounds().Dy()
			}

			var trim sprite.TrimInfo
			if opts.Trim {
				trim = sprite.Trim(img.RGBA, opts.Fuzz/100)
			} else {
				trim = sprite.NoTrim(img.Width, img.Height)
			}
			items[i] = sprite.Item{Image: img, Trim: trim}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// pack sorts the padded rectangles, runs the packer, and resolves the canvas
// constraints. Expansion never moves placements.
func (r *Runner) pack(items []sprite.Item, opts Options) (*sprite.AtlasResult, error) {
	rects := make([]pack.Rect, len(items))
	for i, it := range items {
		rects[i] = pack.Rect{
			Name:   it.Image.Name,
			Width:  it.Trim.Width + 2*opts.Padding,
			Height: it.Trim.Height + 2*opts.Padding,
		}
	}

	if err := pack.Sort(rects, opts.Sort); err != nil {
		return nil, err
	}

	packer, err := pack.New(opts.Algorithm, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	width, height, err := packer.Pack(rects)
	if err != nil {
		return nil, err
	}

	width, height = pack.Resolve(width, height, pack.Constraints{
		Square:         opts.Square,
		PowerOfTwo:     opts.PowerOfTwo,
		DivisibleByTwo: opts.DivisibleByTwo,
	})

	if opts.Validate {
		if err := pack.Validate(rects, width, height); err != nil {
			return nil, err
		}
	}

	// Sorting reordered the rects; map placements back by name. Names are
	// unique because the provider lists each file once.
	placed := make(map[string]pack.Rect, len(rects))
	for _, rc := range rects {
		placed[rc.Name] = rc
	}

	atlas := &sprite.AtlasResult{
		Plan:  sprite.CanvasPlan{Width: width, Height: height},
		Items: make([]sprite.Item, len(items)),
	}
	for i, it := range items {
		rc, ok := placed[it.Image.Name]
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "no placement for %s", it.Image.Name)
		}
		it.Placement = sprite.Placement{
			X: rc.X + opts.Padding,
			Y: rc.Y + opts.Padding,
		}
		atlas.Items[i] = it
	}
	return atlas, nil
}

// renderers resolves every requested format plus the custom template, keyed
// by format identifier.
func (r *Runner) renderers(opts Options) (map[string]emit.Renderer, error) {
	out := make(map[string]emit.Renderer, len(opts.Formats)+1)
	for _, format := range opts.Formats {
		renderer, err := emit.Lookup(format)
		if err != nil {
			return nil, err
		}
		out[format] = renderer
	}
	if opts.TemplatePath != "" {
		ext := opts.TemplateExt
		if ext == "" {
			ext = "txt"
		}
		renderer, err := emit.NewTemplateFile(opts.TemplatePath, ext)
		if err != nil {
			return nil, err
		}
		out["template"] = renderer
	}
	return out, nil
}

func (r *Runner) optimizeAtlas(ctx context.Context, png []byte, opts Options) ([]byte, error) {
	client := optimize.Client{
		APIKey: opts.APIKey,
		URL:    r.OptimizerURL,
		Cache:  r.Cache,
	}
	return client.Optimize(ctx, png)
}
