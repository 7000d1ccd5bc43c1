// Package tags reads and writes platform compatibility tag files.
//
// A tags file is plain text with one tag per line in the wire form
//
//	<interpreter><version>-<abi>-<platform>
//
// e.g. "cp311-cp311-manylinux_2_17_x86_64". The interpreter field must
// start with "cp" (CPython) or "py" (generic). The parsed form drops the
// interpreter prefix and keeps the bare version string, which is what
// `pip download --python-version` expects.
package tags

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/wheelhouse/pkg/errors"
)

// Tag is a (python version, ABI, platform) compatibility triple used to
// request platform-specific binary distributions.
type Tag struct {
	PythonVersion string // bare version string, e.g. "311" or "3"
	ABI           string // e.g. "cp311", "abi3", "none"
	Platform      string // e.g. "manylinux_2_17_x86_64"
}

// String returns the tag in wire form. Parsed tags lose their original
// interpreter prefix; CPython is assumed, which holds for every tag this
// tool generates.
func (t Tag) String() string {
	return fmt.Sprintf("cp%s-%s-%s", t.PythonVersion, t.ABI, t.Platform)
}

// ParseLine parses a single tag line into a Tag.
//
// It returns a FILE-level distinction via error codes: a line that does
// not split into exactly 3 hyphen-separated fields yields an
// INVALID_INPUT error (callers skip these), while a structurally valid
// line whose interpreter starts with neither "cp" nor "py" yields an
// INVALID_TAG error naming the bad field (callers treat these as fatal).
func ParseLine(line string) (Tag, error) {
	parts := strings.Split(line, "-")
	if len(parts) != 3 {
		return Tag{}, errors.New(errors.ErrCodeInvalidInput, "failed to parse line %q as a tag", line)
	}
	interpreter, abi, platform := parts[0], parts[1], parts[2]
	if !strings.HasPrefix(interpreter, "cp") && !strings.HasPrefix(interpreter, "py") {
		return Tag{}, errors.New(errors.ErrCodeInvalidTag, "unexpected interpreter format: %s", interpreter)
	}
	return Tag{
		PythonVersion: interpreter[2:],
		ABI:           abi,
		Platform:      platform,
	}, nil
}

// ParseFile reads a tags file and returns the parsed tags in file order.
//
// Lines that fail structural parsing (not exactly 3 fields) are skipped;
// a warning message per skipped line is returned so the caller can report
// them. A structurally valid line with a bad interpreter prefix aborts
// the parse. A missing file yields a TAGS_NOT_FOUND error instructing the
// user to generate the file first.
func ParseFile(path string) ([]Tag, []string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil, errors.New(errors.ErrCodeTagsNotFound,
			"tags file %s not found; run `wheelhouse sysinfo` first to generate it", path)
	}
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeIO, err, "reading tags file %s", path)
	}
	defer f.Close()

	var (
		parsed   []Tag
		warnings []string
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tag, err := ParseLine(line)
		if err != nil {
			if errors.Is(err, errors.ErrCodeInvalidTag) {
				return nil, warnings, err
			}
			warnings = append(warnings, errors.UserMessage(err))
			continue
		}
		parsed = append(parsed, tag)
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, errors.Wrap(errors.ErrCodeIO, err, "reading tags file %s", path)
	}
	return parsed, warnings, nil
}

// WriteFile writes tags to path, one tag per line, overwriting any
// existing file.
func WriteFile(path string, tags []Tag) error {
	var b strings.Builder
	for _, t := range tags {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "writing tags file %s", path)
	}
	return nil
}
