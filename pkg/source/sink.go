package source

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/spritepack/pkg/errors"
)

// Sink writes pipeline outputs under a target directory, creating it on
// demand. Existing files are overwritten; writing the same output twice is
// not an error.
type Sink struct{}

// Write stores data at dir/name.ext and returns the written path.
func (Sink) Write(dir, name, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", dir)
	}
	path := filepath.Join(dir, name+"."+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return path, nil
}
