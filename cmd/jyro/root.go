package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// --- Global Command Variables ---
var (
	flagColor   = colorAuto
	flagVerbose bool

	logger *slog.Logger
	color  bool

	rootCmd = &cobra.Command{
		Use:   "jyro",
		Short: "Compile, run, and serve jyro scripts",
		Long: `jyro is the command-line surface for the jyro scripting
language: compile and execute scripts directly, lint them without
running, diff two precompiled artifacts, or serve the HTTP/websocket
execution API.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if flagVerbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			color = colorEnabled(flagColor)
		},
	}
)

// persistentFlags is typed as *pflag.FlagSet explicitly (rather than
// left to inference from rootCmd.PersistentFlags()) since cobra's flag
// sets are pflag underneath, and registering flagColor as a pflag.Value
// rather than a bare string is the whole point of taking this
// dependency directly instead of only transitively through cobra.
func persistentFlags() *pflag.FlagSet {
	return rootCmd.PersistentFlags()
}

func init() {
	pf := persistentFlags()
	pf.Var(&flagColor, "color", "colorize diagnostic output: auto, always, never")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(artifactCmd)
	rootCmd.AddCommand(serveCmd)
}
