// Package mirror orchestrates a download run: the fixed build-support
// packages first, then every requested specifier, strictly sequential,
// and finally the local manifest that makes the resulting directory
// installable offline.
package mirror

import (
	"context"

	"github.com/matzehuels/wheelhouse/pkg/tags"
)

// DefaultPackages are the build-support packages fetched before the
// requirements on every run. Source distributions in the mirror need
// these present to build offline.
var DefaultPackages = []string{"Cython", "wheel", "setuptools"}

const (
	// ErrorLogName is the append-only log of permanently failed packages,
	// written in the working directory.
	ErrorLogName = "download_errors.log"

	// ManifestName is the generated local requirements manifest, fully
	// overwritten each run.
	ManifestName = "local_requirements.txt"
)

// Fetcher downloads a single package for a set of compatibility tags.
// *pip.Downloader is the production implementation.
type Fetcher interface {
	Download(ctx context.Context, pkg string, sysTags []tags.Tag) error
}

// Hooks receives per-package progress notifications. Both fields may be
// nil.
type Hooks struct {
	Start func(pkg string)
	Done  func(pkg string)
}

// Run fetches the default build packages followed by every specifier in
// specs, one at a time in order. Repeated names are fetched repeatedly;
// deduplication is left to pip, which skips files already present in the
// destination directory.
//
// Per-package failures are the Fetcher's business (logged, not
// returned); Run stops only when the context is cancelled or the error
// log cannot be written.
func Run(ctx context.Context, f Fetcher, specs []string, sysTags []tags.Tag, hooks Hooks) error {
	all := make([]string, 0, len(DefaultPackages)+len(specs))
	all = append(all, DefaultPackages...)
	all = append(all, specs...)

	for _, pkg := range all {
		if hooks.Start != nil {
			hooks.Start(pkg)
		}
		if err := f.Download(ctx, pkg, sysTags); err != nil {
			return err
		}
		if hooks.Done != nil {
			hooks.Done(pkg)
		}
	}
	return nil
}
