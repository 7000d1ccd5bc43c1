// Package reqs reads the package lists that drive a download run.
//
// Two input formats are supported: plain requirements.txt files, whose
// lines are passed to pip verbatim, and poetry.lock files, whose pinned
// packages are downloaded as exact "name==version" specifiers.
package reqs

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/matzehuels/wheelhouse/pkg/errors"
)

var nameRE = regexp.MustCompile(`^([a-zA-Z0-9][-a-zA-Z0-9._]*)`)

// Read loads the package specifiers from path, dispatching on the file
// name: poetry.lock files are TOML-parsed, everything else is treated as
// a requirements file.
func Read(path string) ([]string, error) {
	if filepath.Base(path) == "poetry.lock" {
		return ReadPoetryLock(path)
	}
	return ReadRequirements(path)
}

// Name extracts the bare distribution name from a package specifier,
// normalized per PEP 503 (lowercase, underscores to hyphens). Returns ""
// if the specifier does not start with a valid name.
func Name(spec string) string {
	m := nameRE.FindStringSubmatch(strings.TrimSpace(spec))
	if len(m) < 2 {
		return ""
	}
	return Normalize(m[1])
}

// Normalize converts a package name to its canonical form per PEP 503:
// lowercase with underscores replaced by hyphens. PyPI treats all
// spellings of a name as equivalent under this normalization.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeFileNotFound, "the file %s does not exist", path)
}
