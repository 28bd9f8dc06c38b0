package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"chirp/internal/app"

	"github.com/spf13/cobra"
)

// serveDebug enables debug-level logging for the posting loop.
var serveDebug bool

// serveSilent suppresses all log output. Errors still decide the exit code.
var serveSilent bool

// serveConfigPath overrides the directory the config file is loaded from.
var serveConfigPath string

// serveCmd starts the scheduled posting loop.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the posting loop",
	Long: `Run the scheduled posting loop.

chirp posts immediately on startup and then on the configured cadence
(post_every_hours, floored at one minute). The loop runs until it is
interrupted; a posting failure is logged and the loop keeps going.

The command fails up front when no usable authorization is configured,
so a misconfigured unit exits with code 2 instead of failing on every
tick.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServe bootstraps the application and runs the loop until SIGINT
// or SIGTERM. A started posting cycle always finishes; the signal only
// stops future ticks.
func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(serveDebug, serveSilent, serveConfigPath)

	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	return application.Run(ctx)
}

// init registers the serve command and its flags with the root command.
func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().BoolVar(&serveSilent, "silent", false, "Suppress all log output")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", "", "Directory to load config.yaml from (default ~/.config/chirp)")
}
