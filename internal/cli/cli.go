// Package cli implements the wheelhouse command-line interface.
//
// This package provides commands for downloading Python packages as
// wheels for a set of target platforms (download), generating the tags
// file from the current host (sysinfo), verifying requirements against
// PyPI (check), serving a download directory as a local package index
// (serve), and managing the PyPI response cache (cache). The CLI is
// built using cobra and supports verbose logging via the
// charmbracelet/log library.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wheelhouse/pkg/buildinfo"
	"github.com/matzehuels/wheelhouse/pkg/cache"
	"github.com/matzehuels/wheelhouse/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "wheelhouse"

	// defaultTagsFile is the conventional tags file name, shared by the
	// sysinfo writer and the download reader.
	defaultTagsFile = "system.tags"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// verbose reports whether debug logging is enabled; commands use it to
// decide between spinners and log lines.
func (c *CLI) verbose() bool {
	return c.Logger.GetLevel() <= log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Wheelhouse pre-downloads Python packages for offline installs",
		Long:         `Wheelhouse shells out to pip to pre-download Python packages and their dependencies as wheels matching a set of target platform tags, so they can later be installed on machines without network access.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.downloadCommand())
	root.AddCommand(c.sysinfoCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Backends
// =============================================================================

// newCache builds the cache backend selected on the command line.
func newCache(ctx context.Context, backend, redisAddr string) (cache.Cache, error) {
	switch backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, redisAddr)
	case "file", "":
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (file, redis, none)", backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/wheelhouse/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
