package cmd

import (
	"chirp/internal/app"
	"chirp/internal/auth"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// authStatusCmd reports the active authorization mode and token state.
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active authorization mode",
	Long: `Show which authorization mode chirp runs with and, in OAuth 2.0
mode, the state of the stored token set.

The command only inspects local configuration and the token file; it
never contacts the provider.`,
	Args: cobra.NoArgs,
	RunE: runAuthStatus,
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	initAuthLogging()

	chirpCfg, err := app.LoadChirpConfig(authConfigPath)
	if err != nil {
		return err
	}

	authPrintln("Authorization")

	// All four static credentials beat whatever the token store holds.
	if chirpCfg.OAuth1Credentials().Complete() {
		authPrint("  Mode:      %s\n", text.FgGreen.Sprint(auth.ModeOAuth1.String()))
		authPrint("             Requests are signed with the configured static credentials.\n")
		authPrint("             The stored token set, if any, is ignored.\n")
		return nil
	}

	store, err := app.NewTokenStore(&chirpCfg, authConfigPath)
	if err != nil {
		return err
	}

	authPrint("  Mode:      %s\n", auth.ModeOAuth2.String())

	token := store.Peek()
	if token == nil {
		authPrint("  Status:    %s\n", text.FgYellow.Sprint("Not authenticated"))
		authPrint("             Run: chirp auth login\n")
		return nil
	}

	authPrint("  Status:    %s\n", text.FgGreen.Sprint("Authenticated"))
	if token.ExpiresAt > 0 {
		authPrint("  Expires:   %s\n", formatExpiryWithDirection(token.ExpiresAtTime()))
	}
	if token.RefreshToken != "" {
		authPrint("  Refresh:   %s\n", text.FgGreen.Sprint("Available"))
	} else {
		authPrint("  Refresh:   %s\n", text.FgYellow.Sprint("Not available (re-auth required on expiry)"))
	}
	authPrint("  Tokens:    %s\n", text.FgHiBlack.Sprint(store.Path()))

	return nil
}
