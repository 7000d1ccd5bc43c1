package pip

import (
	"context"
	"fmt"
	"io"

	"github.com/matzehuels/wheelhouse/pkg/errors"
	"github.com/matzehuels/wheelhouse/pkg/tags"
)

// Downloader fetches one package at a time into a destination directory,
// trying a binary download per compatibility tag before falling back to
// an unconstrained source download.
//
// Downloaded files materialize in the destination directory as a side
// effect of the external command; the Downloader does not track them.
type Downloader struct {
	cmd    *Command
	dir    string
	errLog io.Writer // append-only log of permanently failed packages
	logf   func(format string, args ...any)
}

// NewDownloader creates a Downloader writing into dir. Permanent failures
// are recorded on errLog, one line per package. logf receives progress
// and diagnostic messages; pass nil to discard them.
func NewDownloader(cmd *Command, dir string, errLog io.Writer, logf func(string, ...any)) *Downloader {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Downloader{cmd: cmd, dir: dir, errLog: errLog, logf: logf}
}

// Download fetches pkg and its dependencies, trying each tag in order
// with a binary-only download and stopping at the first success. If
// every tag fails, one unconstrained attempt downloads the source
// distribution instead. If that fails too, the package is recorded in
// the error log and Download returns nil: a single package must never
// abort the batch.
//
// The returned error is non-nil only for context cancellation or an
// error-log write failure.
func (d *Downloader) Download(ctx context.Context, pkg string, sysTags []tags.Tag) error {
	for _, t := range sysTags {
		args := []string{
			"download", pkg,
			"--python-version", t.PythonVersion,
			"--platform", t.Platform,
			"--abi", t.ABI,
			"--only-binary=:all:",
			"-d", d.dir,
		}
		out, err := d.cmd.runner.Run(ctx, d.cmd.Name, args...)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.logf("binary download failed for %s with tag %s, trying next tag\n%s", pkg, t, out)
	}

	// Source fallback: no tag constraints.
	out, err := d.cmd.runner.Run(ctx, d.cmd.Name, "download", pkg, "-d", d.dir)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	d.logf("source download failed for %s\n%s", pkg, out)

	if _, err := fmt.Fprintf(d.errLog, "Failed to download binary and source for package %s.\n", pkg); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "writing download error log")
	}
	return nil
}
