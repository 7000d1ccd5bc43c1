package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func serveTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	wheels := []string{
		"requests-2.31.0-py3-none-any.whl",
		"numpy-1.26.0-cp311-cp311-manylinux_2_17_x86_64.whl",
	}
	for _, w := range wheels {
		if err := os.WriteFile(filepath.Join(dir, w), []byte("wheel data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "sdist-1.0.tar.gz"), []byte("sdist"), 0o644); err != nil {
		t.Fatal(err)
	}
	return indexRouter(dir, testCLI()), dir
}

func TestIndexRouter_ListsWheels(t *testing.T) {
	router, _ := serveTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"requests-2.31.0-py3-none-any.whl", "numpy-1.26.0-cp311-cp311-manylinux_2_17_x86_64.whl"} {
		if !strings.Contains(body, `href="`+name+`"`) {
			t.Errorf("index missing link to %s:\n%s", name, body)
		}
	}
	if strings.Contains(body, "sdist-1.0.tar.gz") {
		t.Error("index lists non-wheel artifact")
	}
}

func TestIndexRouter_ServesWheel(t *testing.T) {
	router, _ := serveTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/requests-2.31.0-py3-none-any.whl", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data, _ := io.ReadAll(rec.Body)
	if string(data) != "wheel data" {
		t.Errorf("body = %q", data)
	}
}

func TestIndexRouter_RejectsNonWheel(t *testing.T) {
	router, _ := serveTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sdist-1.0.tar.gz", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestIndexRouter_StripsPathTraversal(t *testing.T) {
	router, dir := serveTestRouter(t)

	// A secret outside the served directory must not be reachable.
	secret := filepath.Join(filepath.Dir(dir), "secret.whl")
	if err := os.WriteFile(secret, []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/..%2Fsecret.whl", nil)
	router.ServeHTTP(rec, req)

	if rec.Code == http.StatusOK && rec.Body.String() == "secret" {
		t.Error("path traversal escaped the served directory")
	}
}
