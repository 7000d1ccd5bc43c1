package reqs

import (
	"bufio"
	"os"
	"strings"

	"github.com/matzehuels/wheelhouse/pkg/errors"
)

// ReadRequirements reads a requirements file and returns one specifier
// per non-blank line, whitespace-trimmed but otherwise verbatim: version
// qualifiers, extras and environment markers are pip's business, not
// ours.
func ReadRequirements(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, notFound(path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "reading %s", path)
	}
	defer f.Close()

	var specs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		specs = append(specs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "reading %s", path)
	}
	return specs, nil
}
