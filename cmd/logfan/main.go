// Command logfan routes text lines from stdin through a configured logfan
// registry, so a setup can be tried out without writing Go.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/philipp01105/logfan/config"
	"github.com/philipp01105/logfan/core"
	"github.com/philipp01105/logfan/handler"
	"github.com/philipp01105/logfan/logger"
	"github.com/philipp01105/logfan/transport"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "logfan",
		Short:         "logfan routing CLI",
		Long:          "logfan pipes log lines through a registry, transport and sink built from a config file, LOGFAN_* variables and flags.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (.json or .toml)")
	pf.String("level", "", "registry level, by name or number")
	pf.String("sink", "", "console|zap|zerolog|logrus|slog")
	pf.String("format", "", "text|json")
	pf.String("filter", "", "CEL guard expression")
	pf.String("solo", "", "only pass events of this logger")
	pf.Bool("color", false, "color warn and error lines")

	// pipe
	pipeCmd := &cobra.Command{
		Use:   "pipe",
		Short: "Log every stdin line",
		Long: "Each line is logged as \"[tag] LEVEL: message\"; the tag and level prefixes are optional " +
			"and default to --tag and --line-level.",
		RunE:  runPipe,
	}
	pipeCmd.Flags().String("tag", "stdin", "logger for lines without a [tag] prefix")
	pipeCmd.Flags().String("line-level", "INFO", "level for lines without a LEVEL: prefix")
	pipeCmd.Flags().Bool("stats", false, "print transport statistics to stderr when done")
	rootCmd.AddCommand(pipeCmd)

	// levels
	levelsCmd := &cobra.Command{
		Use:   "levels",
		Short: "List the level scale",
		Run: func(cmd *cobra.Command, args []string) {
			names := core.LevelNames()
			for _, l := range []core.Level{
				core.VerboseLevel, core.TraceLevel, core.DebugLevel, core.InfoLevel,
				core.WarnLevel, core.ErrorLevel, core.FatalLevel,
			} {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d %s\n", l, names.Get(l))
			}
		},
	}
	rootCmd.AddCommand(levelsCmd)

	// validate
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s -> %s (%s)\n", cfg.Name, cfg.Output.Sink, cfg.Output.Format)
			return nil
		},
	}
	rootCmd.AddCommand(validateCmd)

	return rootCmd
}

func runPipe(cmd *cobra.Command, args []string) (err error) {
	tag, _ := cmd.Flags().GetString("tag")
	lineLevel, _ := cmd.Flags().GetString("line-level")
	showStats, _ := cmd.Flags().GetBool("stats")
	level, ok := logger.LookupLevel(lineLevel)
	if !ok {
		return errors.Errorf("invalid --line-level %q", lineLevel)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setup, err := config.Build(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, setup.Close()) }()

	diagSetup := newDiagnostics(cmd.ErrOrStderr())
	defer func() { err = multierr.Append(err, diagSetup.Close()) }()
	diag := diagSetup.Logger("logfan")

	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		lvl, name, msg := parseLine(sc.Text(), tag, level)
		if err := setup.Logger(name).Emit(lvl, msg); err != nil {
			diag.Error("delivery failed", logger.String("logger", name), logger.Err(err))
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "read stdin")
	}
	if showStats {
		s := setup.Transport.Stats()
		diag.Info("transport stats",
			logger.Int64("processed", int64(s.ProcessedTotal)),
			logger.Int64("suppressed", int64(s.SuppressedTotal)),
			logger.Int64("failed", int64(s.FailedTotal)),
		)
	}
	return nil
}

// loadConfig layers the config file, the environment and then any flags
// given on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	config.FromEnv(&cfg)

	flags := cmd.Flags()
	if flags.Changed("level") {
		v, _ := flags.GetString("level")
		cfg.Level = config.LevelValue(v)
	}
	if flags.Changed("sink") {
		cfg.Output.Sink, _ = flags.GetString("sink")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("filter") {
		cfg.Filter, _ = flags.GetString("filter")
	}
	if flags.Changed("solo") {
		cfg.Solo, _ = flags.GetString("solo")
	}
	if flags.Changed("color") {
		cfg.Output.Color, _ = flags.GetBool("color")
	}
	return cfg, nil
}

// parseLine splits "[tag] LEVEL: message". Missing parts take the defaults.
func parseLine(line, tag string, level core.Level) (core.Level, string, string) {
	msg := line
	if strings.HasPrefix(msg, "[") {
		if end := strings.IndexByte(msg, ']'); end > 1 {
			tag = msg[1:end]
			msg = strings.TrimLeft(msg[end+1:], " ")
		}
	}
	if word, rest, ok := strings.Cut(msg, ":"); ok && !strings.ContainsAny(word, " \t") {
		if l, found := logger.LookupLevel(word); found {
			level = l
			msg = strings.TrimLeft(rest, " ")
		}
	}
	return level, tag, msg
}

// newDiagnostics wires the CLI's own registry, writing to w.
func newDiagnostics(w io.Writer) *config.Setup {
	sink := handler.NewConsoleHandler(handler.ConsoleConfig{Writer: w, ErrWriter: w})
	t := transport.New(transport.Config{
		Name:      "cli",
		Listeners: []handler.EventListener{sink},
	})
	return &config.Setup{
		Registry:  logger.NewRegistry(logger.RegistryConfig{Name: "cli", Transport: t}),
		Transport: t,
		Sink:      sink,
	}
}
