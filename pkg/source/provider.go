// Package source reads sprite images from disk and writes pipeline outputs
// back. The provider scans a directory for decodable images in a stable
// order; the sink creates output directories on demand and overwrites
// existing files.
package source

import (
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/sprite"

	// Registered decoders beyond PNG. The provider accepts any format the
	// image registry can sniff.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// decodableExts are the file extensions the provider picks up when scanning.
var decodableExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Provider lists and decodes sprite images from a directory.
type Provider struct{}

// List returns the relative paths of images directly under dir, in
// lexicographic order so runs are deterministic. A non-empty ext (with or
// without the leading dot) restricts the scan to that extension; an empty ext
// accepts every decodable extension. An empty result is a NO_INPUT_FILES
// error.
func (Provider) List(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNoInputFiles, err, "read input directory %s", dir)
	}

	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		got := strings.ToLower(filepath.Ext(e.Name()))
		if ext != "" {
			if got == ext {
				names = append(names, e.Name())
			}
		} else if decodableExts[got] {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		if ext != "" {
			return nil, errors.New(errors.ErrCodeNoInputFiles, "no %s files found in %s", ext, dir)
		}
		return nil, errors.New(errors.ErrCodeNoInputFiles, "no image files found in %s", dir)
	}

	sort.Strings(names)
	return names, nil
}

// Load decodes the image at dir/name into an RGBA source image. Decode
// failures are DECODE_ERROR carrying the path.
func (Provider) Load(dir, name string) (*sprite.SourceImage, error) {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "open %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", path)
	}

	return &sprite.SourceImage{
		Name:   name,
		Path:   path,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		RGBA:   toRGBA(img),
	}, nil
}

// toRGBA normalizes any decoded image to *image.RGBA with bounds at the
// origin.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
