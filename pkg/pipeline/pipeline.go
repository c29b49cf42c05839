// Package pipeline provides the core packing pipeline for spritepack.
//
// This package implements the complete load → pack → compose → emit pipeline
// that can be used by the CLI and by library consumers. By centralizing this
// logic, we ensure consistent behavior across all entry points.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Load: decode source images, scale, and trim them in parallel
//  2. Pack: sort the rectangles and assign placements on the canvas
//  3. Resolve: expand the canvas to satisfy geometric constraints
//  4. Compose: copy every trimmed pixel region onto the atlas and encode it
//  5. Emit: render a descriptor per requested format and write everything
//
// Each stage fully completes before the next begins; only the load stage is
// parallel, because per-image decode and trim are independent.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    SrcDir:  "./sprites",
//	    OutDir:  "./out",
//	    Formats: []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	descriptor := result.Descriptors["json"]
package pipeline

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spritepack/pkg/emit"
	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/pack"
	"github.com/matzehuels/spritepack/pkg/sprite"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Consumers
// =============================================================================

const (
	// DefaultAlgorithm is the packing algorithm used when none is selected.
	DefaultAlgorithm = pack.AlgorithmGrowing

	// DefaultSort is the rectangle sort strategy used when none is selected.
	DefaultSort = pack.SortMaxSide

	// DefaultFormat is the descriptor format emitted when none is requested.
	DefaultFormat = emit.FormatJSON

	// DefaultName is the atlas base name when none is given and the source
	// directory has no usable base name.
	DefaultName = "spritesheet"

	// DefaultScale is the scale percentage applied to source images.
	DefaultScale = 100
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the packing pipeline.
// This struct supports JSON serialization for config files and tooling.
type Options struct {
	// Input options
	SrcDir string  `json:"src_dir"`
	Ext    string  `json:"ext,omitempty"` // source file extension filter; empty accepts any decodable image
	Trim   bool    `json:"trim,omitempty"`
	Fuzz   float64 `json:"fuzz,omitempty"`  // percent, 0..100
	Scale  int     `json:"scale,omitempty"` // percent, > 0

	// Packing options
	Algorithm      string `json:"algorithm,omitempty"`
	Sort           string `json:"sort,omitempty"`
	Width          int    `json:"width,omitempty"`  // binpacking only
	Height         int    `json:"height,omitempty"` // binpacking only
	Padding        int    `json:"padding,omitempty"`
	Square         bool   `json:"square,omitempty"`
	PowerOfTwo     bool   `json:"power_of_two,omitempty"`
	DivisibleByTwo bool   `json:"divisible_by_two,omitempty"`
	Validate       bool   `json:"validate,omitempty"`

	// Output options
	OutDir       string   `json:"out_dir,omitempty"`
	Name         string   `json:"name,omitempty"`
	Formats      []string `json:"formats,omitempty"`
	TemplatePath string   `json:"template_path,omitempty"`
	TemplateExt  string   `json:"template_ext,omitempty"`
	Prefix       string   `json:"prefix,omitempty"`
	FullPath     bool     `json:"full_path,omitempty"`
	CSSOrder     []string `json:"css_order,omitempty"`

	// Optimizer options
	APIKey string `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Atlas is the encoded atlas image (optimized when the optimizer ran
	// and succeeded).
	Atlas []byte

	// Descriptors contains rendered descriptor text keyed by format.
	Descriptors map[string][]byte

	// Plan is the resolved canvas size.
	Plan sprite.CanvasPlan

	// Paths lists every file the sink wrote.
	Paths []string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ImageCount  int
	FillRatio   float64
	Optimized   bool
	LoadTime    time.Duration
	PackTime    time.Duration
	ComposeTime time.Duration
	EmitTime    time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.SrcDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source directory is required")
	}

	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if !pack.ValidAlgorithms[o.Algorithm] {
		return errors.New(errors.ErrCodeInvalidAlgorithm, "unknown algorithm: %q", o.Algorithm)
	}
	if o.Algorithm == pack.AlgorithmBinpacking {
		if o.Width <= 0 || o.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidInput,
				"binpacking requires positive width and height, got %dx%d", o.Width, o.Height)
		}
	}

	if o.Sort == "" {
		o.Sort = DefaultSort
	}
	if !pack.ValidSorts[o.Sort] {
		return errors.New(errors.ErrCodeInvalidSort, "unknown sort: %q", o.Sort)
	}

	if o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "padding must be non-negative, got %d", o.Padding)
	}
	if o.Fuzz < 0 || o.Fuzz > 100 {
		return errors.New(errors.ErrCodeInvalidInput, "fuzz must be in [0, 100], got %g", o.Fuzz)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %d", o.Scale)
	}

	if len(o.Formats) == 0 && o.TemplatePath == "" {
		o.Formats = []string{DefaultFormat}
	}
	for _, f := range o.Formats {
		if _, err := emit.Lookup(f); err != nil {
			return err
		}
	}

	if o.Name == "" {
		o.Name = atlasName(o.SrcDir)
	}
	if o.OutDir == "" {
		o.OutDir = "."
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// atlasName derives the default atlas name from the source directory.
func atlasName(srcDir string) string {
	base := filepath.Base(filepath.Clean(srcDir))
	if base == "." || base == string(filepath.Separator) {
		return DefaultName
	}
	return base
}
