package cmd

import (
	"context"
	"fmt"

	"chirp/internal/app"
	"chirp/internal/poster"

	"github.com/spf13/cobra"
)

// postText bypasses the content provider and posts the given text verbatim.
var postText string

// postDebug enables debug-level logging for the one-shot post.
var postDebug bool

// postSilent suppresses all log output. Errors still decide the exit code.
var postSilent bool

// postConfigPath overrides the directory the config file is loaded from.
var postConfigPath string

// postCmd runs a single posting cycle and exits.
var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post once and exit",
	Long: `Run a single posting cycle: generate content (or take it from
--text) and publish it.

Unlike the loop in 'chirp serve', a posting failure here is fatal and
decides the exit code.`,
	Args: cobra.NoArgs,
	RunE: runPost,
}

// runPost bootstraps the application and performs one post.
func runPost(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(postDebug, postSilent, postConfigPath)

	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := postResult(ctx, application)
	if err != nil {
		return err
	}

	if !postSilent {
		fmt.Printf("Posted, id %s\n", result.Data.ID)
	}
	return nil
}

// postResult runs the cycle, with --text short-circuiting content
// generation entirely.
func postResult(ctx context.Context, application *app.Application) (*poster.PostResult, error) {
	if postText != "" {
		return application.PostText(ctx, postText)
	}
	return application.PostOnce(ctx)
}

// init registers the post command and its flags with the root command.
func init() {
	rootCmd.AddCommand(postCmd)

	postCmd.Flags().StringVar(&postText, "text", "", "Post this text instead of generated content")
	postCmd.Flags().BoolVar(&postDebug, "debug", false, "Enable debug logging")
	postCmd.Flags().BoolVar(&postSilent, "silent", false, "Suppress all log output")
	postCmd.Flags().StringVar(&postConfigPath, "config-path", "", "Directory to load config.yaml from (default ~/.config/chirp)")
}
