package cli

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wheelhouse/pkg/pip"
	"github.com/matzehuels/wheelhouse/pkg/tags"
)

// sysinfoOpts holds the command-line flags for the sysinfo command.
type sysinfoOpts struct {
	output string // tags file to write
}

// sysinfoCommand creates the sysinfo command. It probes the host and the
// installed Python interpreter and writes the compatibility tags file
// that the download command consumes.
func (c *CLI) sysinfoCommand() *cobra.Command {
	opts := sysinfoOpts{output: defaultTagsFile}

	cmd := &cobra.Command{
		Use:   "sysinfo",
		Short: "Detect the host platform and write the tags file",
		Long: `Detect the host platform and Python interpreter and write the
compatibility tags file used by the download command.

The tags cover the interpreter-specific ABI, the stable abi3, and pure
Python wheels for every platform tag installable on this machine.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSysinfo(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "tags file to write")

	return cmd
}

func (c *CLI) runSysinfo(ctx context.Context, opts sysinfoOpts) error {
	cmd, err := pip.Resolve(ctx)
	if err != nil {
		return err
	}

	platform := runtime.GOOS
	if info, err := host.InfoWithContext(ctx); err == nil {
		platform = fmt.Sprintf("%s %s (%s)", info.Platform, info.PlatformVersion, info.OS)
	} else {
		c.Logger.Debugf("host detection failed, using runtime values: %v", err)
	}

	printKeyValue("Platform", platform)
	printKeyValue("Arch", runtime.GOARCH)
	printKeyValue("Python", cmd.PythonVersion)
	printKeyValue("Pip", fmt.Sprintf("%s %s", cmd.Name, cmd.Version))

	hostTags := tags.Host(strings.ReplaceAll(cmd.PythonVersion, ".", ""), runtime.GOOS, runtime.GOARCH)
	if err := tags.WriteFile(opts.output, hostTags); err != nil {
		return err
	}

	printNewline()
	printSuccess("Wrote %d tags", len(hostTags))
	printFile(opts.output)
	printNewline()
	printNextStep("Download packages", fmt.Sprintf("wheelhouse download -r requirements.txt -d packages -t %s", opts.output))
	return nil
}
