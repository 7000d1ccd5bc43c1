package reqs

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wheelhouse/pkg/errors"
)

// ReadPoetryLock reads a poetry.lock file and returns every pinned
// package as an exact "name==version" specifier. The lock file already
// contains the full transitive closure, so downloading its entries
// reproduces the environment without further resolution.
func ReadPoetryLock(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, notFound(path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "reading %s", path)
	}

	var lock lockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing %s", path)
	}

	specs := make([]string, 0, len(lock.Packages))
	for _, pkg := range lock.Packages {
		if pkg.Name == "" || pkg.Version == "" {
			continue
		}
		specs = append(specs, fmt.Sprintf("%s==%s", Normalize(pkg.Name), pkg.Version))
	}
	return specs, nil
}

type lockFile struct {
	Packages []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}
