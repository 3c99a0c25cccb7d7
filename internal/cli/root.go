package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/REDFOX1899/gpt-cmd/internal/candidate"
	"github.com/REDFOX1899/gpt-cmd/internal/clipboard"
	"github.com/REDFOX1899/gpt-cmd/internal/config"
	"github.com/REDFOX1899/gpt-cmd/internal/logging"
	"github.com/REDFOX1899/gpt-cmd/internal/prompt"
	"github.com/REDFOX1899/gpt-cmd/internal/provider"
	"github.com/REDFOX1899/gpt-cmd/internal/sysinfo"
	"github.com/REDFOX1899/gpt-cmd/internal/ui"
)

// Messages printed on the terminal
const (
	usageLine      = "Usage: gpt-cmd <prompt>"
	noSolutionsMsg = "No solutions found."
	noSelectionMsg = "No command selected."
	copiedSuffix   = " (Command copied to clipboard)"
)

var (
	// ErrUsage is returned when no request was given
	ErrUsage = errors.New("missing prompt")
	// ErrNoSolutions is returned when the response holds no candidate lines
	ErrNoSolutions = errors.New("no solutions found")
)

// deps are the collaborators of a run, replaced in tests
type deps struct {
	stdout io.Writer
	stderr io.Writer

	loadConfig   func(path string) (*config.Config, error)
	newCompleter func(cfg *config.Config, logger *slog.Logger) (provider.Provider, error)
	probe        func(ctx context.Context) sysinfo.Info
	selector     ui.Selector
	newSink      func(cfg *config.Config) clipboard.Sink
}

func defaultDeps() *deps {
	return &deps{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		loadConfig:   config.Load,
		newCompleter: provider.New,
		probe:        sysinfo.Collect,
		selector:     ui.NewMenu(nil, os.Stderr),
		newSink: func(cfg *config.Config) clipboard.Sink {
			return clipboard.NewSystem(cfg.ClipboardOSC52, os.Stderr)
		},
	}
}

// options holds the persistent flags
type options struct {
	verbose bool
	cfgFile string
}

func newRootCmd(d *deps) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "gpt-cmd <prompt>",
		Short: "Turn a natural language request into shell commands",
		Long: `gpt-cmd asks a language model for shell commands that answer your request,
tailored to this machine's OS and shell. Pick one from the menu and it is
copied to the clipboard.

The API key is read from ` + config.APIKeyEnv + `.`,
		Example: `  gpt-cmd "list all files modified in the last 7 days"
  gpt-cmd "show disk usage of current directory"
  gpt-cmd -v "count lines in all python files"`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), d, opts, args)
		},
	}

	cmd.SetOut(d.stdout)
	cmd.SetErr(d.stderr)

	// Everything after the first word belongs to the request, so
	// `gpt-cmd show ls -la output` is not parsed as flags.
	cmd.Flags().SetInterspersed(false)
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug output")
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "Config file (default $HOME/.gpt-cmd/config.yaml)")

	cmd.SetHelpCommand(newHelpCmd(d, opts))
	cmd.AddCommand(newVersionCmd(d, opts))
	cmd.AddCommand(newSysinfoCmd(d, opts))

	return cmd
}

// newHelpCmd replaces cobra's help command. `help <command>` still shows
// that command's help; any other words are a request such as
// `gpt-cmd help me find large files`.
func newHelpCmd(d *deps, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "help [command]",
		Short: "Help about any command",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			if len(args) == 0 {
				return root.Help()
			}
			target, rest, err := root.Find(args)
			if err != nil || target == root || len(rest) > 0 {
				return runAsRequest(cmd, d, opts, args)
			}
			return target.Help()
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// runAsRequest treats a subcommand invoked with extra words as the first
// word of an unquoted request, e.g. `gpt-cmd version of python`.
func runAsRequest(cmd *cobra.Command, d *deps, opts *options, args []string) error {
	return run(cmd.Context(), d, opts, append([]string{cmd.Name()}, args...))
}

// reportedError marks an error that was already shown to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// execute runs cmd and prints any error nothing else has reported, such as
// flag parsing failures.
func execute(ctx context.Context, cmd *cobra.Command, stderr io.Writer) error {
	err := cmd.ExecuteContext(ctx)
	var shown *reportedError
	if err != nil && !errors.As(err, &shown) {
		ui.PrintError(stderr, err.Error())
	}
	return err
}

// Execute runs the CLI application
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := defaultDeps()
	return execute(ctx, newRootCmd(d), d.stderr)
}

// run is the whole pipeline: probe, build prompt, complete, parse, select,
// copy. Cancelling at the menu is not an error.
func run(ctx context.Context, d *deps, opts *options, args []string) error {
	request := strings.TrimSpace(strings.Join(args, " "))
	if request == "" {
		fmt.Fprintln(d.stderr, usageLine)
		return reported(ErrUsage)
	}

	cfg, err := d.loadConfig(opts.cfgFile)
	if err != nil {
		ui.PrintError(d.stderr, fmt.Sprintf("failed to load config: %v", err))
		return reported(err)
	}
	logger := logging.New(d.stderr, opts.verbose || cfg.Verbose)

	p, err := d.newCompleter(cfg, logger)
	if err != nil {
		ui.PrintError(d.stderr, err.Error())
		return reported(err)
	}
	logger.Debug("using provider", "provider", p.Name(), "model", p.Model())

	info := d.probe(ctx)
	logger.Debug("collected system info", "info", info.String())

	text := prompt.Build(request, info)
	logger.Debug("built prompt", "request", request, "chars", len(text))

	raw, err := p.Complete(ctx, text)
	if err != nil {
		ui.PrintError(d.stderr, fmt.Sprintf("could not get a response from the %s API: %v", p.Name(), err))
		return reported(err)
	}

	candidates := candidate.Parse(raw)
	logger.Debug("parsed response", "candidates", len(candidates))
	if len(candidates) == 0 {
		fmt.Fprintln(d.stdout, noSolutionsMsg)
		return reported(ErrNoSolutions)
	}

	selected, ok, err := d.selector.Select(ctx, candidates)
	if err != nil {
		ui.PrintError(d.stderr, err.Error())
		return reported(err)
	}
	if !ok {
		fmt.Fprintln(d.stdout, noSelectionMsg)
		return nil
	}

	if err := d.newSink(cfg).Copy(selected); err != nil {
		// keep the selection visible even though it never reached the clipboard
		fmt.Fprintln(d.stdout, selected)
		ui.PrintError(d.stderr, err.Error())
		return reported(err)
	}

	fmt.Fprintln(d.stdout, selected+copiedSuffix)
	return nil
}
