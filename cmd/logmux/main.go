// Package main provides the CLI entry point for logmux, a tool that routes
// log lines read from stdin through a YAML-configured channel/output router.
//
// Each input line has the form:
//
//	<channel[,channel...]|*> <level> <message>
//
// where "*" targets every configured channel. Routed lines land on the
// outputs declared in the config file, each applying its own level gate.
//
// With --would-log LEVEL the command instead answers whether any channel
// selected by --channels would log at that level: it prints "true" or
// "false" and exits 0 or 1 accordingly, without reading stdin.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/logmux"
	"go.jacobcolvin.com/logmux/muxconfig"
	"go.jacobcolvin.com/logmux/version"
)

// errNothingWouldLog signals a negative --would-log answer, mapped to exit
// status 1 without an error message.
var errNothingWouldLog = errors.New("no selected channel would log")

func main() {
	loader := muxconfig.NewLoader()

	var (
		diagLevel     string
		wouldLogLevel string
		channels      string
	)

	rootCmd := &cobra.Command{
		Use:   "logmux [flags]",
		Short: "Route log lines from stdin to configured outputs",
		Long: `logmux reads log lines from stdin and routes each one through the channels
named by its selector field, fanning out to the outputs declared in the
config file. Registry anomalies are reported on stderr without aborting.

With --would-log, logmux instead reports whether any channel selected by
--channels would log at the given level, exiting 0 for true and 1 for false.`,
		Version:       version.String(),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if wouldLogLevel != "" {
				return runWouldLog(cmd.OutOrStdout(), loader, diagLevel, wouldLogLevel, channels)
			}

			return run(loader, diagLevel)
		},
	}

	loader.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().StringVar(&diagLevel, "log-level", "warn",
		fmt.Sprintf("diagnostic log level, one of: %s", logmux.AllLevelStrings()))
	rootCmd.Flags().StringVar(&wouldLogLevel, "would-log", "",
		"answer whether the selected channels would log at this level, then exit")
	rootCmd.Flags().StringVar(&channels, "channels", "*",
		"channel selector for --would-log: * or a comma-separated name list")

	completionErr := loader.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	for _, flag := range []string{"log-level", "would-log"} {
		completionErr = rootCmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions(logmux.AllLevelStrings(), cobra.ShellCompDirectiveNoFileComp))
		if completionErr != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
		}
	}

	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, errNothingWouldLog) {
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(loader *muxconfig.Loader, diagLevel string) error {
	router, diag, closer, err := buildRouter(loader, diagLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		routeLine(router, diag, scanner.Text())
	}

	scanErr := scanner.Err()
	if scanErr != nil {
		return fmt.Errorf("reading stdin: %w", scanErr)
	}

	return nil
}

// runWouldLog answers one would-log query against the configured router.
// The boolean answer goes to w; a false answer is additionally reported as
// [errNothingWouldLog] so the process exit status reflects it.
func runWouldLog(w io.Writer, loader *muxconfig.Loader, diagLevel, level, channels string) error {
	lvl, err := logmux.ParseLevel(level)
	if err != nil {
		return err
	}

	router, _, closer, err := buildRouter(loader, diagLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	would := router.WouldLog(lvl, parseSelector(channels))
	fmt.Fprintln(w, would)

	if !would {
		return errNothingWouldLog
	}

	return nil
}

func buildRouter(loader *muxconfig.Loader, diagLevel string) (*logmux.Router, *slog.Logger, io.Closer, error) {
	lvl, err := logmux.ParseLevel(diagLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	diag := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl.Slog(),
	}))

	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	router, closer, err := cfg.Build(logmux.WithLogger(diag))
	if err != nil {
		return nil, nil, nil, err
	}

	return router, diag, closer, nil
}

// parseSelector maps the CLI selector syntax to a [logmux.Selector]:
// "*" targets all channels, anything else is a comma-separated name list.
func parseSelector(field string) logmux.Selector {
	if field == "*" {
		return logmux.All
	}

	return logmux.To(strings.Split(field, ",")...)
}

// routeLine parses and routes one input line. Malformed lines are reported
// on the diagnostic logger and skipped, matching the router's non-fatal
// handling of unknown channel names.
func routeLine(router *logmux.Router, diag *slog.Logger, line string) {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 3)
	if len(fields) < 3 || fields[0] == "" {
		diag.Warn("malformed line, want '<selector> <level> <message>'", slog.String("line", line))
		return
	}

	level, err := logmux.ParseLevel(fields[1])
	if err != nil {
		diag.Warn("skipping line", slog.Any("error", err))
		return
	}

	err = router.Log(parseSelector(fields[0]), level, fields[2])
	if err != nil {
		diag.Error("routing line", slog.Any("error", err))
	}
}
