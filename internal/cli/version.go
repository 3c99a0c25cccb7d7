package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// Version can be set at build time with -ldflags "-X .../internal/cli.Version=v1.2.3"
var Version = "dev"

func newVersionCmd(d *deps, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  `Print the version number of gpt-cmd`,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return runAsRequest(cmd, d, opts, args)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resolveVersion(os.Executable))
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// resolveVersion prefers the build-time value, then a VERSION file next to
// the executable.
func resolveVersion(executable func() (string, error)) string {
	if Version != "dev" {
		return Version
	}

	if execPath, err := executable(); err == nil {
		versionFile := filepath.Join(filepath.Dir(execPath), "VERSION")
		if data, err := os.ReadFile(versionFile); err == nil {
			if v := strings.TrimSpace(string(data)); v != "" {
				return v
			}
		}
	}

	return Version
}
