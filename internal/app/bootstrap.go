package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"chirp/internal/config"
	"chirp/internal/poster"
	"chirp/pkg/logging"
)

// Application represents the main application structure that bootstraps and
// runs chirp. It encapsulates the configuration and services required for the
// application's lifecycle.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: initialize logging, load configuration, wire services
//  2. Execution phase: Run the posting loop, or PostOnce for a single post
//
// Example usage:
//
//	cfg := app.NewConfig(false, false, "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance with the
// provided configuration. This function performs the complete bootstrap
// sequence:
//
//  1. Configures logging based on the debug and silent settings
//  2. Loads chirp configuration (custom path or default directory)
//  3. Wires the token store, authorizer, content provider, poster, and loop
//
// The returned error is a *auth.ConfigurationError when no usable credentials
// exist; callers map that to its own exit code.
func NewApplication(cfg *Config) (*Application, error) {
	InitLogging(cfg)

	chirpCfg, err := LoadChirpConfig(cfg.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load chirp configuration")
		return nil, fmt.Errorf("failed to load chirp configuration: %w", err)
	}
	cfg.ChirpConfig = &chirpCfg

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, err
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// InitLogging configures the logging system from the debug and silent flags.
// Safe to call before any other bootstrap step; the auth subcommands call it
// without building an Application.
func InitLogging(cfg *Config) {
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.Silent {
		logOutput = io.Discard
	}
	logging.InitForCLI(appLogLevel, logOutput)
}

// LoadChirpConfig loads config.yaml from configPath, or from the default
// config directory when configPath is empty.
func LoadChirpConfig(configPath string) (config.Config, error) {
	if configPath == "" {
		configPath = config.GetDefaultConfigPathOrPanic()
	}
	return config.LoadConfig(configPath)
}

// Run executes the scheduled posting loop until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	return a.services.Bot.Run(ctx)
}

// PostOnce generates one post and publishes it.
func (a *Application) PostOnce(ctx context.Context) (*poster.PostResult, error) {
	return a.services.Bot.PostOnce(ctx)
}

// PostText publishes the given text once, bypassing content generation.
func (a *Application) PostText(ctx context.Context, text string) (*poster.PostResult, error) {
	return a.services.Poster.Post(ctx, text)
}
