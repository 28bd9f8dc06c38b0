package cmd

import (
	"context"
	"time"

	"chirp/internal/app"
	"chirp/internal/auth"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// loginTimeout bounds the whole login, including how long the user may
// take in the browser. The callback listener itself has no deadline.
var loginTimeout time.Duration

// loginNoBrowser prints the authorization URL instead of opening a browser.
var loginNoBrowser bool

// authLoginCmd runs the interactive OAuth 2.0 authorization code flow.
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize chirp with your account",
	Long: `Run the OAuth 2.0 authorization code flow with PKCE.

chirp starts a one-shot listener on the configured redirect URI, opens
the provider's authorization page in your browser, and waits for the
redirect. The resulting token set is stored locally and refreshed
automatically from then on.

Use --no-browser on a headless machine; the URL is printed so it can be
opened elsewhere, as long as the redirect can still reach this host.`,
	Args: cobra.NoArgs,
	RunE: runAuthLogin,
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	initAuthLogging()

	chirpCfg, err := app.LoadChirpConfig(authConfigPath)
	if err != nil {
		return err
	}

	if chirpCfg.OAuth1Credentials().Complete() {
		authPrintln(text.FgYellow.Sprint("Note: OAuth 1.0a credentials are configured and take precedence over the token set this login produces."))
	}

	store, err := app.NewTokenStore(&chirpCfg, authConfigPath)
	if err != nil {
		return err
	}

	flow, err := auth.NewLoginFlow(auth.LoginFlowConfig{
		ClientID:    chirpCfg.ClientID,
		RedirectURI: chirpCfg.RedirectURI,
		Scopes:      chirpCfg.Scopes,
		Store:       store,
		OpenBrowser: !loginNoBrowser,
		OnAuthorizeURL: func(url string) {
			authPrintln("Open this URL in your browser to authorize chirp:")
			authPrintln()
			authPrintln("  " + url)
			authPrintln()
		},
	})
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, loginTimeout)
	defer cancel()

	var s *spinner.Spinner
	if !authQuiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Waiting for authorization..."
		s.Start()
	}

	token, err := flow.Run(ctx)

	if s != nil {
		if err != nil {
			s.FinalMSG = text.FgRed.Sprint("Authorization failed") + "\n"
		}
		s.Stop()
	}
	if err != nil {
		return err
	}

	authPrintln()
	authPrint("%s\n", text.FgGreen.Sprint("Authorization successful"))
	authPrint("  Token expires %s\n", formatExpiryWithDirection(token.ExpiresAtTime()))
	if token.RefreshToken != "" {
		authPrint("  Refresh token stored, chirp renews access automatically\n")
	} else {
		authPrint("  %s\n", text.FgYellow.Sprint("No refresh token granted, log in again when access expires"))
	}
	authPrint("  Token set saved to %s\n", text.FgHiBlack.Sprint(store.Path()))

	return nil
}

// init registers the login flags.
func init() {
	authLoginCmd.Flags().DurationVar(&loginTimeout, "timeout", 5*time.Minute, "How long to wait for the browser handshake")
	authLoginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "Print the authorization URL instead of opening a browser")
}
