package mirror

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/wheelhouse/pkg/errors"
)

// Scan returns the wheel files directly inside dir (non-recursive),
// sorted by name. Files produced by source fallbacks (sdists) are not
// wheels and are deliberately excluded: the manifest references only
// artifacts installable without a build step.
func Scan(dir string) ([]string, error) {
	wheels, err := filepath.Glob(filepath.Join(dir, "*.whl"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "scanning %s", dir)
	}
	return wheels, nil
}

// WriteManifest scans dir for wheels and writes their paths, relative to
// the working directory and prefixed "./", one per line into the
// manifest at path, overwriting any previous manifest. The result feeds
// pip install -r directly. Returns the number of wheels written.
func WriteManifest(dir, path string) (int, error) {
	wheels, err := Scan(dir)
	if err != nil {
		return 0, err
	}

	var b strings.Builder
	for _, wheel := range wheels {
		rel := wheel
		if cwd, err := os.Getwd(); err == nil {
			if r, err := filepath.Rel(cwd, wheel); err == nil {
				rel = r
			}
		}
		b.WriteString("./" + filepath.ToSlash(rel) + "\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return 0, errors.Wrap(errors.ErrCodeIO, err, "writing manifest %s", path)
	}
	return len(wheels), nil
}
