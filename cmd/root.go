package cmd

import (
	"errors"
	"os"

	"chirp/internal/auth"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
// These follow common conventions so wrappers (systemd units, cron
// jobs) can tell a missing authorization from an ordinary failure.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeAuthRequired indicates chirp cannot authorize requests with the
	// configuration it was given. Run 'chirp auth login' or fix the config file.
	ExitCodeAuthRequired = 2
	// ExitCodeAuthFailed indicates the OAuth flow failed.
	ExitCodeAuthFailed = 3
)

// rootCmd represents the base command for the chirp application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chirp",
	Short: "Post to X/Twitter on a fixed cadence",
	Long: `chirp is a small posting bot for X/Twitter.

It signs requests with OAuth 1.0a when all four static credentials are
configured, and otherwise runs OAuth 2.0 with a locally persisted,
auto-refreshing token set obtained via 'chirp auth login'.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	// This is useful for providing cleaner error output to the user.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
// This can be used by other commands to access the build version.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles subcommands and flags.
// This function is called by main.main().
func Execute() {
	// SetVersionTemplate defines a custom template for displaying the version.
	// This is used when the --version flag is invoked.
	rootCmd.SetVersionTemplate(`{{printf "chirp version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Check for specific error types and return appropriate exit codes
		exitCode := getExitCode(err)
		os.Exit(exitCode)
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	// Missing or inconsistent credentials, including OAuth 2.0 mode
	// without a persisted token set.
	var configErr *auth.ConfigurationError
	if errors.As(err, &configErr) {
		return ExitCodeAuthRequired
	}

	// An interactive login was attempted and did not complete.
	var flowErr *auth.AuthorizationFlowError
	if errors.As(err, &flowErr) {
		return ExitCodeAuthFailed
	}

	// Default to general error
	return ExitCodeError
}

// init is a special Go function that is executed when the package is initialized.
// It is used here to add subcommands to the root command.
func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
