package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"chirp/internal/app"
	"chirp/internal/config"
	"chirp/pkg/logging"

	"github.com/spf13/cobra"
)

// authConfigPath overrides the directory config.yaml and tokens.json live in.
var authConfigPath string

// authQuiet suppresses informational output. Errors still go to stderr.
var authQuiet bool

// authCmd groups the OAuth 2.0 authorization commands.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage chirp's authorization",
	Long: `Manage the OAuth 2.0 token set chirp posts with.

These commands only matter in OAuth 2.0 mode. When all four OAuth 1.0a
credentials are configured, chirp signs requests with those and the
token set is ignored.`,
}

// authPrint writes formatted output unless --quiet is set.
func authPrint(format string, args ...interface{}) {
	if !authQuiet {
		fmt.Printf(format, args...)
	}
}

// authPrintln writes a line of output unless --quiet is set.
func authPrintln(args ...interface{}) {
	if !authQuiet {
		fmt.Println(args...)
	}
}

// initAuthLogging routes log output for the auth commands. Only
// warnings and errors surface, on stderr; the commands print their own
// informational output.
func initAuthLogging() {
	out := io.Writer(os.Stderr)
	if authQuiet {
		out = io.Discard
	}
	logging.InitForCLI(logging.LevelWarn, out)
}

// authLogoutYes skips the confirmation prompt.
var authLogoutYes bool

// authLogoutCmd deletes the persisted token set.
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the stored token set",
	Long: `Delete the locally stored OAuth 2.0 token set.

chirp cannot post in OAuth 2.0 mode afterwards until 'chirp auth login'
is run again. This does not revoke the token with the provider.`,
	Args: cobra.NoArgs,
	RunE: runAuthLogout,
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	initAuthLogging()

	chirpCfg, err := app.LoadChirpConfig(authConfigPath)
	if err != nil {
		return err
	}

	store, err := app.NewTokenStore(&chirpCfg, authConfigPath)
	if err != nil {
		return err
	}

	if !store.HasToken() {
		authPrintln("No stored token set.")
		return nil
	}

	if !authLogoutYes {
		fmt.Printf("Delete the token set at %s? [y/N]: ", store.Path())
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			authPrintln("Aborted.")
			return nil
		}
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to delete token set: %w", err)
	}

	authPrintln("Token set deleted.")
	return nil
}

// init registers the auth command group with the root command.
func init() {
	rootCmd.AddCommand(authCmd)

	authCmd.PersistentFlags().StringVar(&authConfigPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Directory config.yaml and tokens.json live in")
	authCmd.PersistentFlags().BoolVarP(&authQuiet, "quiet", "q", false, "Suppress informational output")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)

	authLogoutCmd.Flags().BoolVarP(&authLogoutYes, "yes", "y", false, "Skip the confirmation prompt")
}
