// Package emit renders atlas placement metadata into the supported descriptor
// formats.
//
// Formats are registered in a renderer registry at startup; [Lookup] resolves
// a format identifier to its [Renderer]. The JSON family is produced from
// typed structs, the text formats (yaml, xml, starling, sparrow, easeljs,
// css, plist) from templates. A caller-supplied template file can be mounted
// as a custom format via [NewTemplateFile].
//
// Every format encodes the same geometry: frame x/y/width/height, and — when
// trimming is active — the untrimmed source size and trim offset, so a
// renderer can reconstruct the original bounds including transparent padding.
package emit

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/sprite"
)

// Format identifiers accepted by [Lookup].
const (
	FormatJSON      = "json"
	FormatJSONArray = "jsonarray"
	FormatYAML      = "yaml"
	FormatXML       = "xml"
	FormatStarling  = "starling"
	FormatSparrow   = "sparrow"
	FormatEaselJS   = "easeljs"
	FormatCSS       = "css"
	FormatPlist     = "plist"
)

// Frame is one sprite's descriptor entry.
type Frame struct {
	// Name after prefix/fullpath transforms.
	Name string

	// Frame rectangle on the atlas.
	X, Y, Width, Height int

	// Untrimmed source size and the trimmed box's offset within it.
	SourceWidth, SourceHeight int
	OffsetX, OffsetY          int

	Trimmed bool
	Rotated bool
}

// Sheet is the flattened, render-ready view of an AtlasResult.
type Sheet struct {
	// Name is the atlas base name; Image is the atlas file name (name + ext).
	Name  string
	Image string

	Width  int
	Height int

	Frames []Frame

	// CSSOrder lists frame names to emit first in the css format. Remaining
	// frames follow in pipeline order.
	CSSOrder []string
}

// Renderer turns a Sheet into descriptor text. Implementations must not
// mutate the Sheet; the same Sheet is rendered by every requested format.
type Renderer interface {
	// Render produces the descriptor bytes.
	Render(s *Sheet) ([]byte, error)

	// Ext returns the file extension for this format, without the dot.
	Ext() string
}

// registry maps format identifiers to renderers. Populated at init.
var registry = map[string]Renderer{}

func register(name string, r Renderer) {
	registry[name] = r
}

// Lookup resolves a format identifier. Unknown identifiers are an
// UNSUPPORTED_FORMAT error listing the valid choices.
func Lookup(format string) (Renderer, error) {
	if r, ok := registry[format]; ok {
		return r, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupportedFmt,
		"unknown format: %q (must be one of: %s)", format, strings.Join(Formats(), ", "))
}

// Formats returns the registered format identifiers, sorted.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NameOptions control how source names become descriptor frame names.
type NameOptions struct {
	// Prefix is prepended to every frame name.
	Prefix string

	// FullPath keeps the provider-supplied relative path (including
	// extension) instead of the bare base name.
	FullPath bool
}

// FrameName applies the naming transform to a provider-supplied name.
func (o NameOptions) FrameName(name string) string {
	if !o.FullPath {
		base := filepath.Base(name)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return o.Prefix + name
}

// BuildSheet flattens an AtlasResult into a Sheet. name is the atlas base
// name and imageExt the atlas file extension (without dot).
//
// Frame names must be unique: object-keyed formats (json, css) would silently
// drop duplicates otherwise. When two sources collapse to the same name (e.g.
// a.png and a.jpg without FullPath), the later one falls back to its full
// provider name so both frames survive.
func BuildSheet(res *sprite.AtlasResult, name, imageExt string, opts NameOptions) *Sheet {
	s := &Sheet{
		Name:   name,
		Image:  name + "." + imageExt,
		Width:  res.Plan.Width,
		Height: res.Plan.Height,
		Frames: make([]Frame, len(res.Items)),
	}
	seen := make(map[string]bool, len(res.Items))
	for i, it := range res.Items {
		fname := opts.FrameName(it.Image.Name)
		if seen[fname] {
			fname = opts.Prefix + it.Image.Name
		}
		seen[fname] = true
		s.Frames[i] = Frame{
			Name:         fname,
			X:            it.Placement.X,
			Y:            it.Placement.Y,
			Width:        it.Trim.Width,
			Height:       it.Trim.Height,
			SourceWidth:  it.Trim.SourceWidth,
			SourceHeight: it.Trim.SourceHeight,
			OffsetX:      it.Trim.OffsetX,
			OffsetY:      it.Trim.OffsetY,
			Trimmed:      it.Trim.Trimmed,
			Rotated:      it.Placement.Rotated,
		}
	}
	return s
}

// OrderedFrames returns the frames in CSS emission order: names listed in
// CSSOrder first, in the given order, then every remaining frame in pipeline
// order. Unknown names in CSSOrder are ignored.
func (s *Sheet) OrderedFrames() []Frame {
	if len(s.CSSOrder) == 0 {
		return s.Frames
	}

	byName := make(map[string]int, len(s.Frames))
	for i, f := range s.Frames {
		byName[f.Name] = i
	}

	out := make([]Frame, 0, len(s.Frames))
	emitted := make(map[string]bool, len(s.CSSOrder))
	for _, name := range s.CSSOrder {
		if i, ok := byName[name]; ok && !emitted[name] {
			out = append(out, s.Frames[i])
			emitted[name] = true
		}
	}
	for _, f := range s.Frames {
		if !emitted[f.Name] {
			out = append(out, f)
		}
	}
	return out
}
