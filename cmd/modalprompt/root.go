package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nao1215/modalprompt"
	"github.com/nao1215/modalprompt/internal/config"
	"github.com/nao1215/modalprompt/internal/log"
	"github.com/nao1215/modalprompt/teahost"
)

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

// app holds the streams and environment a command runs against.
type app struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	lookupEnv func(string) (string, bool)
}

// flags holds the command-line flags. Only flags the user set override the
// config file.
type flags struct {
	configFile  string
	defaultVal  string
	multiLine   bool
	platform    string
	ui          string
	theme       string
	placeholder string
	submitLabel string
	history     string
	output      string
	verbose     bool
}

// Execute runs the root command against the process streams and returns
// the exit status.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := &app{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		lookupEnv: os.LookupEnv,
	}
	return a.exitCode(newRootCmd(a).ExecuteContext(ctx))
}

func newRootCmd(a *app) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "modalprompt [title]",
		Short: "Ask for a line or a block of text in a modal prompt",
		Long: `modalprompt shows a modal text prompt and prints the confirmed value.

Single-line prompts confirm on Enter. Multi-line prompts show a Submit
button: on desktop Enter confirms and Shift+Enter (or Alt+Enter) inserts a
newline; on touch platforms Enter does nothing and only Submit confirms.
Esc dismisses the prompt and exits with status 1; Ctrl+C exits with 130.`,
		Example: `  modalprompt "Backup name" --default vault
  modalprompt "Commit message" --multiline --output clipboard
  echo "hello" | modalprompt "Greeting"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       versionString(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, &f)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	fl := cmd.Flags()
	fl.StringVar(&f.configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/modalprompt/config.toml)")
	fl.StringVarP(&f.defaultVal, "default", "d", "", "Value pre-filled into the prompt")
	fl.BoolVarP(&f.multiLine, "multiline", "m", false, "Multi-line text area with a Submit button")
	fl.StringVar(&f.platform, "platform", config.PlatformAuto, "Enter semantics: desktop, touch or auto")
	fl.StringVar(&f.ui, "ui", config.UITerminal, "Prompt runtime: terminal or tea")
	fl.StringVar(&f.theme, "theme", "default", "Color theme")
	fl.StringVar(&f.placeholder, "placeholder", "", "Placeholder shown while the input is empty")
	fl.StringVar(&f.submitLabel, "submit-label", "", "Label of the Submit button")
	fl.StringVar(&f.history, "history", "", "History file for Up/Down recall (terminal UI)")
	fl.StringVarP(&f.output, "output", "o", config.OutputStdout, "Where to write the value: -, clipboard or a file path")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Print debug information to stderr")

	_ = cmd.RegisterFlagCompletionFunc("platform", cobra.FixedCompletions(
		[]string{config.PlatformAuto, "desktop", "touch"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("ui", cobra.FixedCompletions(
		[]string{config.UITerminal, config.UITea}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("theme", cobra.FixedCompletions(
		modalprompt.ThemeNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("default") {
		cfg.Default = f.defaultVal
	}
	if changed("multiline") {
		cfg.MultiLine = f.multiLine
	}
	if changed("platform") {
		cfg.Platform = f.platform
	}
	if changed("ui") {
		cfg.UI = f.ui
	}
	if changed("theme") {
		cfg.Theme = f.theme
	}
	if changed("placeholder") {
		cfg.Placeholder = f.placeholder
	}
	if changed("submit-label") {
		cfg.SubmitLabel = f.submitLabel
	}
	if changed("history") {
		cfg.History.File = f.history
	}
	if changed("output") {
		cfg.Output = f.output
	}
}

func (a *app) run(cmd *cobra.Command, args []string, f *flags) error {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, f, &cfg)
	if len(args) == 1 {
		cfg.Title = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(a.stderr, f.verbose)
	ctx := log.WithLogger(cmd.Context(), logger)

	platform, err := a.resolvePlatform(cfg.Platform)
	if err != nil {
		return err
	}
	theme, _ := modalprompt.ThemeByName(cfg.Theme)
	logger.Debugf("ui=%s platform=%s theme=%s output=%s", cfg.UI, platform, theme.Name, cfg.Output)

	writer := newValueWriter(cfg.Output, a.stdout)
	opts := []modalprompt.Option{
		modalprompt.WithDefault(cfg.Default),
		modalprompt.WithMultiLine(cfg.MultiLine),
		modalprompt.WithPlatform(platform),
		modalprompt.WithPlaceholder(cfg.Placeholder),
		modalprompt.WithSubmitLabel(cfg.SubmitLabel),
		modalprompt.WithWarnings(logger.Writer()),
	}

	var d *modalprompt.Dialog
	switch cfg.UI {
	case config.UITea:
		d, err = a.runTea(ctx, cfg, theme, writer, opts)
	default:
		d, err = a.runTerminal(ctx, cfg, theme, writer, opts)
	}
	if err != nil {
		return err
	}
	if !d.Submitted() {
		return modalprompt.ErrDismissed
	}
	if err := writer.Err(); err != nil {
		return fmt.Errorf("failed to write value: %w", err)
	}
	return nil
}

func (a *app) runTerminal(ctx context.Context, cfg config.Config, theme *modalprompt.Theme, c modalprompt.Consumer, opts []modalprompt.Option) (*modalprompt.Dialog, error) {
	logger := log.FromContext(ctx)

	out := a.stderr
	if f, ok := out.(*os.File); ok {
		out = colorable.NewColorable(f)
	}
	hostOpts := []modalprompt.HostOption{
		modalprompt.WithTheme(theme),
		modalprompt.WithOutput(out),
		modalprompt.WithHostWarnings(logger.Writer()),
	}
	if cfg.History.File != "" {
		logger.Debugf("history file %s", cfg.History.File)
		hostOpts = append(hostOpts, modalprompt.WithHistory(modalprompt.NewHistory(modalprompt.HistoryConfig{
			File:       cfg.History.File,
			MaxEntries: cfg.History.MaxEntries,
		})))
	}

	var (
		host *modalprompt.TerminalHost
		err  error
	)
	if a.stdinIsTerminal() {
		host, err = modalprompt.NewTerminalHost(hostOpts...)
	} else {
		logger.Debugf("stdin is not a terminal, reading keys from the stream")
		host, err = modalprompt.NewStreamHost(a.stdin, out, hostOpts...)
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := host.Close(); err != nil {
			logger.Warnf("failed to close terminal: %v", err)
		}
	}()

	d, err := modalprompt.New(host, c, cfg.Title, opts...)
	if err != nil {
		return nil, err
	}
	return d, host.Run(ctx, d)
}

func (a *app) runTea(ctx context.Context, cfg config.Config, theme *modalprompt.Theme, c modalprompt.Consumer, opts []modalprompt.Option) (*modalprompt.Dialog, error) {
	logger := log.FromContext(ctx)
	if cfg.History.File != "" {
		logger.Warnf("history is only supported by the terminal UI")
	}

	host := teahost.New(teahost.WithTheme(theme))
	d, err := modalprompt.New(host, c, cfg.Title, opts...)
	if err != nil {
		return nil, err
	}

	programOpts := []tea.ProgramOption{tea.WithOutput(a.stderr)}
	if !a.stdinIsTerminal() {
		programOpts = append(programOpts, tea.WithInput(a.stdin))
	}
	return d, host.Run(ctx, d, programOpts...)
}

func (a *app) resolvePlatform(name string) (modalprompt.Platform, error) {
	if name == config.PlatformAuto {
		return modalprompt.DetectPlatform(a.lookupEnv), nil
	}
	return modalprompt.ParsePlatform(name)
}

func (a *app) stdinIsTerminal() bool {
	f, ok := a.stdin.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// exitCode reports err on stderr and maps it to the process exit status.
func (a *app) exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, modalprompt.ErrInterrupted):
		return exitInterrupted
	case errors.Is(err, modalprompt.ErrDismissed), errors.Is(err, modalprompt.ErrEOF):
		fmt.Fprintln(a.stderr, "modalprompt: dismissed")
		return exitFailure
	default:
		fmt.Fprintf(a.stderr, "modalprompt: %v\n", err)
		return exitFailure
	}
}
