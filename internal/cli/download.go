package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wheelhouse/pkg/errors"
	"github.com/matzehuels/wheelhouse/pkg/mirror"
	"github.com/matzehuels/wheelhouse/pkg/pip"
	"github.com/matzehuels/wheelhouse/pkg/reqs"
	"github.com/matzehuels/wheelhouse/pkg/tags"
)

// downloadOpts holds the command-line flags for the download command.
type downloadOpts struct {
	requirements string // requirements file path (requirements.txt or poetry.lock)
	dir          string // destination directory for downloaded distributions
	tagsFile     string // platform tags file path
}

// downloadCommand creates the download command.
//
// For every requested package the flow tries one binary download per
// platform tag, falls back to an unconstrained source download, and on
// total failure records the package in download_errors.log and moves on.
// Afterwards a local requirements manifest referencing the downloaded
// wheels is written next to the working directory.
func (c *CLI) downloadCommand() *cobra.Command {
	opts := downloadOpts{tagsFile: defaultTagsFile}

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download packages and their dependencies as wheels",
		Long: `Download packages and their dependencies for offline installation.

Each package listed in the requirements file (plus the bootstrap set
Cython, wheel and setuptools) is fetched via pip, trying a binary wheel
for every platform tag before falling back to a source distribution.
Packages that cannot be fetched at all are appended to ` + mirror.ErrorLogName + `
instead of aborting the run.

Examples:
  wheelhouse download -r requirements.txt -d packages
  wheelhouse download -r poetry.lock -d packages -t system.tags`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDownload(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.requirements, "requirements", "r", "", "requirements file (requirements.txt or poetry.lock)")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "destination directory for downloaded distributions")
	cmd.Flags().StringVarP(&opts.tagsFile, "tags", "t", opts.tagsFile, "platform tags file (generate with `wheelhouse sysinfo`)")
	_ = cmd.MarkFlagRequired("requirements")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

// runDownload executes the download flow. Inputs are validated before
// pip is probed so that a bad invocation fails fast.
func (c *CLI) runDownload(ctx context.Context, opts downloadOpts) error {
	specs, err := reqs.Read(opts.requirements)
	if err != nil {
		return err
	}

	sysTags, warnings, err := tags.ParseFile(opts.tagsFile)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		printWarning("%s", w)
	}

	cmd, err := pip.Resolve(ctx)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Using %s %s (python %s)", cmd.Name, cmd.Version, cmd.PythonVersion)

	if err := os.MkdirAll(opts.dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "creating download directory %s", opts.dir)
	}

	errLog, err := os.OpenFile(mirror.ErrorLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "opening %s", mirror.ErrorLogName)
	}
	defer errLog.Close()

	printInfo("Downloading %d packages with %d platform tags", len(specs)+len(mirror.DefaultPackages), len(sysTags))

	dl := pip.NewDownloader(cmd, opts.dir, errLog, c.Logger.Debugf)
	prog := newProgress(c.Logger)

	if err := mirror.Run(ctx, dl, specs, sysTags, c.downloadHooks(ctx)); err != nil {
		return err
	}

	if c.verbose() {
		prog.done(fmt.Sprintf("Downloaded %d packages", len(specs)+len(mirror.DefaultPackages)))
	}

	n, err := mirror.WriteManifest(opts.dir, mirror.ManifestName)
	if err != nil {
		return err
	}

	printSuccess("Downloaded into %s", StyleHighlight.Render(opts.dir))
	printFile(mirror.ManifestName)
	printDetail("%d wheels referenced", n)
	printNewline()
	printNextStep("Install offline", fmt.Sprintf("pip install --no-index --find-links %s -r %s", opts.dir, mirror.ManifestName))
	return nil
}

// downloadHooks returns per-package progress callbacks. With verbose
// logging each package gets a debug line; otherwise a spinner runs for
// the duration of each package.
func (c *CLI) downloadHooks(ctx context.Context) mirror.Hooks {
	if c.verbose() {
		return mirror.Hooks{
			Start: func(pkg string) { c.Logger.Debugf("Downloading %s", pkg) },
		}
	}

	var sp *Spinner
	return mirror.Hooks{
		Start: func(pkg string) {
			sp = newSpinnerWithContext(ctx, "Downloading "+pkg)
			sp.Start()
		},
		Done: func(pkg string) {
			if sp != nil {
				sp.Stop()
			}
		},
	}
}
