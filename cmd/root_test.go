package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"chirp/internal/auth"

	"github.com/spf13/cobra"
)

func TestSetVersion(t *testing.T) {
	// Test setting version
	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestGetVersion(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()

	SetVersion("9.9.9")
	if got := GetVersion(); got != "9.9.9" {
		t.Errorf("Expected GetVersion to return 9.9.9, got %s", got)
	}
}

func TestRootCommand(t *testing.T) {
	// Test root command properties
	if rootCmd.Use != "chirp" {
		t.Errorf("Expected Use to be 'chirp', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestRootSubcommands(t *testing.T) {
	expected := []string{"serve", "post", "auth", "version", "self-update"}

	found := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		found[sub.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestVersionTemplate(t *testing.T) {
	// Create a new command to test version template
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}

	// Set the same version template as in Execute()
	testCmd.SetVersionTemplate(`{{printf "chirp version %s\n" .Version}}`)

	// Capture output
	var buf bytes.Buffer
	testCmd.SetOut(&buf)

	// Execute version command
	testCmd.SetArgs([]string{"--version"})
	err := testCmd.Execute()
	if err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "chirp version 1.0.0") {
		t.Errorf("Expected version output to contain 'chirp version 1.0.0', got %q", output)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "generic error",
			err:      errors.New("something broke"),
			expected: ExitCodeError,
		},
		{
			name:     "configuration error",
			err:      auth.NewConfigurationError("no token set found"),
			expected: ExitCodeAuthRequired,
		},
		{
			name:     "wrapped configuration error",
			err:      fmt.Errorf("bootstrap: %w", auth.NewConfigurationError("client_id missing")),
			expected: ExitCodeAuthRequired,
		},
		{
			name: "authorization flow error",
			err: &auth.AuthorizationFlowError{
				Stage:  auth.StageStateCheck,
				Reason: "state parameter mismatch",
			},
			expected: ExitCodeAuthFailed,
		},
		{
			name: "wrapped flow error",
			err: fmt.Errorf("login: %w", &auth.AuthorizationFlowError{
				Stage:  auth.StageCallback,
				Reason: "no authorization callback received",
			}),
			expected: ExitCodeAuthFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getExitCode(tt.err); got != tt.expected {
				t.Errorf("getExitCode(%v) = %d, expected %d", tt.err, got, tt.expected)
			}
		})
	}
}
