package reqs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/wheelhouse/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadRequirements_Verbatim(t *testing.T) {
	path := writeFile(t, "requirements.txt", `requests==2.31.0
  numpy>=1.24
flask[async]
# a comment line is a specifier too, pip decides

torch
`)
	specs, err := ReadRequirements(path)
	if err != nil {
		t.Fatalf("ReadRequirements() failed: %v", err)
	}

	want := []string{"requests==2.31.0", "numpy>=1.24", "flask[async]", "# a comment line is a specifier too, pip decides", "torch"}
	if len(specs) != len(want) {
		t.Fatalf("got %d specs %v, want %d", len(specs), specs, len(want))
	}
	for i := range want {
		if specs[i] != want[i] {
			t.Errorf("spec %d = %q, want %q", i, specs[i], want[i])
		}
	}
}

func TestReadRequirements_Missing(t *testing.T) {
	_, err := ReadRequirements(filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadPoetryLock(t *testing.T) {
	path := writeFile(t, "poetry.lock", `[[package]]
name = "Markdown_It-py"
version = "3.0.0"

[[package]]
name = "requests"
version = "2.31.0"

[[package]]
name = ""
version = "1.0.0"
`)
	specs, err := ReadPoetryLock(path)
	if err != nil {
		t.Fatalf("ReadPoetryLock() failed: %v", err)
	}

	want := []string{"markdown-it-py==3.0.0", "requests==2.31.0"}
	if len(specs) != len(want) {
		t.Fatalf("got %v, want %v", specs, want)
	}
	for i := range want {
		if specs[i] != want[i] {
			t.Errorf("spec %d = %q, want %q", i, specs[i], want[i])
		}
	}
}

func TestRead_DispatchesOnFilename(t *testing.T) {
	lock := writeFile(t, "poetry.lock", "[[package]]\nname = \"flask\"\nversion = \"3.0.0\"\n")
	specs, err := Read(lock)
	if err != nil {
		t.Fatalf("Read(poetry.lock) failed: %v", err)
	}
	if len(specs) != 1 || specs[0] != "flask==3.0.0" {
		t.Errorf("Read(poetry.lock) = %v", specs)
	}

	txt := writeFile(t, "requirements.txt", "flask>=3\n")
	specs, err = Read(txt)
	if err != nil {
		t.Fatalf("Read(requirements.txt) failed: %v", err)
	}
	if len(specs) != 1 || specs[0] != "flask>=3" {
		t.Errorf("Read(requirements.txt) = %v", specs)
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"requests", "requests"},
		{"requests==2.31.0", "requests"},
		{"Flask[async]>=3.0", "flask"},
		{"typing_extensions>=4.0; python_version < '3.11'", "typing-extensions"},
		{"  numpy >= 1.24", "numpy"},
		{"==broken", ""},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if got := Name(tt.spec); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("Markdown_It_Py"); got != "markdown-it-py" {
		t.Errorf("Normalize = %q", got)
	}
}
