package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/wheelhouse/pkg/errors"
)

func writeTags(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "system.tags")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Tag
		errCode errors.Code
	}{
		{
			name: "cpython tag",
			line: "cp311-cp311-manylinux_2_17_x86_64",
			want: Tag{PythonVersion: "311", ABI: "cp311", Platform: "manylinux_2_17_x86_64"},
		},
		{
			name: "generic interpreter",
			line: "py3-none-any",
			want: Tag{PythonVersion: "3", ABI: "none", Platform: "any"},
		},
		{
			name: "stable abi",
			line: "cp311-abi3-macosx_11_0_arm64",
			want: Tag{PythonVersion: "311", ABI: "abi3", Platform: "macosx_11_0_arm64"},
		},
		{
			name:    "too few fields",
			line:    "cp311-manylinux",
			errCode: errors.ErrCodeInvalidInput,
		},
		{
			name:    "too many fields",
			line:    "cp311-cp311-manylinux-extra",
			errCode: errors.ErrCodeInvalidInput,
		},
		{
			name:    "bad interpreter prefix",
			line:    "ip311-cp311-manylinux_2_17_x86_64",
			errCode: errors.ErrCodeInvalidTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if tt.errCode != "" {
				if !errors.Is(err, tt.errCode) {
					t.Fatalf("ParseLine(%q) error = %v, want code %s", tt.line, err, tt.errCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLine(%q) failed: %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseFile_CountMatchesValidLines(t *testing.T) {
	path := writeTags(t, `cp311-cp311-manylinux_2_17_x86_64
cp311-abi3-manylinux_2_17_x86_64
cp311-none-linux_x86_64
`)
	tags, warnings, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(tags) != 3 {
		t.Errorf("parsed %d tags, want 3", len(tags))
	}
}

func TestParseFile_MalformedLineSkipped(t *testing.T) {
	path := writeTags(t, `cp311-cp311-manylinux_2_17_x86_64
not-a-tag-at-all
cp311-none-any
`)
	tags, warnings, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("parsed %d tags, want 2 (malformed line skipped)", len(tags))
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly 1", warnings)
	}
	for _, tag := range tags {
		if tag.Platform == "at" || tag.ABI == "a" {
			t.Errorf("malformed line leaked into result: %+v", tag)
		}
	}
}

func TestParseFile_BadInterpreterIsFatal(t *testing.T) {
	path := writeTags(t, `cp311-cp311-manylinux_2_17_x86_64
xx311-cp311-manylinux_2_17_x86_64
`)
	_, _, err := ParseFile(path)
	if !errors.Is(err, errors.ErrCodeInvalidTag) {
		t.Fatalf("ParseFile() error = %v, want INVALID_TAG", err)
	}
}

func TestParseFile_SkipsBlankLines(t *testing.T) {
	path := writeTags(t, "\ncp311-none-any\n\n")
	tags, warnings, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}
	if len(tags) != 1 || len(warnings) != 0 {
		t.Errorf("got %d tags, %d warnings; want 1, 0", len(tags), len(warnings))
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, _, err := ParseFile(filepath.Join(t.TempDir(), "absent.tags"))
	if !errors.Is(err, errors.ErrCodeTagsNotFound) {
		t.Fatalf("ParseFile() error = %v, want TAGS_NOT_FOUND", err)
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.tags")
	in := []Tag{
		{PythonVersion: "311", ABI: "cp311", Platform: "manylinux_2_17_x86_64"},
		{PythonVersion: "311", ABI: "none", Platform: "any"},
	}
	if err := WriteFile(path, in); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	out, warnings, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
	if len(out) != len(in) {
		t.Fatalf("parsed %d tags, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("tag %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}
