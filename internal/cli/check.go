package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wheelhouse/pkg/errors"
	"github.com/matzehuels/wheelhouse/pkg/pypi"
	"github.com/matzehuels/wheelhouse/pkg/reqs"
)

// checkCacheTTL is how long PyPI responses stay fresh between runs.
const checkCacheTTL = 24 * time.Hour

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	requirements string // requirements file path
	backend      string // cache backend: file, redis, none
	redisAddr    string // redis address when backend is redis
	refresh      bool   // bypass cached PyPI responses
}

// checkCommand creates the check command. It verifies every requirement
// against the PyPI index before a long download run is committed to.
func (c *CLI) checkCommand() *cobra.Command {
	opts := checkOpts{backend: "file", redisAddr: "localhost:6379"}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify requirements against the PyPI index",
		Long: `Verify that every package in a requirements file exists on PyPI.

Responses are cached so repeated checks are cheap. Use --refresh to
bypass the cache, or --cache-backend none to disable it entirely.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.requirements, "requirements", "r", "", "requirements file (requirements.txt or poetry.lock)")
	cmd.Flags().StringVar(&opts.backend, "cache-backend", opts.backend, "cache backend (file, redis, none)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "redis address for --cache-backend redis")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached responses")
	_ = cmd.MarkFlagRequired("requirements")

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, opts checkOpts) error {
	specs, err := reqs.Read(opts.requirements)
	if err != nil {
		return err
	}

	backend, err := newCache(ctx, opts.backend, opts.redisAddr)
	if err != nil {
		return err
	}
	defer backend.Close()

	client := pypi.NewClient(backend, checkCacheTTL)

	var missing []string
	for _, spec := range specs {
		name := reqs.Name(spec)
		if name == "" {
			printWarning("Skipping unparseable requirement %q", spec)
			continue
		}

		info, err := client.FetchPackage(ctx, name, opts.refresh)
		switch {
		case err == nil:
			c.Logger.Debugf("Found %s %s", info.Name, info.Version)
			printDetail("%s %s", info.Name, info.Version)
		case errors.Is(err, errors.ErrCodePackageNotFound):
			missing = append(missing, name)
			printError("%s not found on PyPI", name)
		default:
			return err
		}
	}

	printNewline()
	if len(missing) > 0 {
		return errors.New(errors.ErrCodePackageNotFound, "%d of %d packages not found on PyPI", len(missing), len(specs))
	}
	printSuccess("All %d packages found on PyPI", len(specs))
	printNextStep("Download them", fmt.Sprintf("wheelhouse download -r %s -d packages", opts.requirements))
	return nil
}
