package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/marcus/navkit/internal/output"
	"github.com/marcus/navkit/internal/workdir"
)

var (
	version string
	baseDir string
	verbose bool
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "navkit",
	Short: "Keyboard navigation and selection for composite widgets",
	Long: `navkit - drive focus, selection and toggling of listboxes, tab lists and carousels
from a declarative key binding table.

Replay interaction scenarios with "navkit check", inspect key maps with
"navkit keys" and try an engine in the terminal with "navkit demo".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		output.Error("%v", err)
		if hint := suggestCommand(os.Args[1:]); hint != "" {
			fmt.Fprintf(os.Stderr, "Did you mean %q?\n", hint)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine decisions to stderr")
}

func initBaseDir() {
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
	baseDir = workdir.FindRoot(baseDir)
}

// getBaseDir returns the base directory for the project
func getBaseDir() string {
	return baseDir
}

func initLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// firstNonFlagArg returns the first argument that is not a flag.
func firstNonFlagArg(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}

// suggestCommand returns the closest command name when the first argument
// is not a known command.
func suggestCommand(args []string) string {
	name := firstNonFlagArg(args)
	if name == "" {
		return ""
	}
	var names []string
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return ""
		}
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
