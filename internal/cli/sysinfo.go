package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/REDFOX1899/gpt-cmd/internal/sysinfo"
)

// Output formats of the sysinfo command
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var supportedFormats = []string{formatText, formatJSON, formatYAML}

func newSysinfoCmd(d *deps, opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "sysinfo",
		Short: "Print the system details sent along with every request",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return runAsRequest(cmd, d, opts, args)
			}
			return writeInfo(cmd.OutOrStdout(), d.probe(cmd.Context()), format)
		},
	}
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().StringVarP(&format, "format", "f", formatText,
		fmt.Sprintf("Output format (%s)", strings.Join(supportedFormats, ", ")))

	return cmd
}

func writeInfo(w io.Writer, info sysinfo.Info, format string) error {
	switch strings.ToLower(format) {
	case formatText:
		for _, k := range info.Keys() {
			v, _ := info.Get(k)
			if _, err := fmt.Fprintf(w, "%s: %s\n", k, v); err != nil {
				return err
			}
		}
		return nil

	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)

	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(info); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("unsupported format %q, use one of: %s", format, strings.Join(supportedFormats, ", "))
	}
}
