package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"chirp/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/chirp"
	configFileName = "config.yaml"
)

func GetDefaultConfigPathOrPanic() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads configuration from a single specified directory.
// The directory should contain config.yaml; a missing file is not an error.
// Environment variables (CHIRP_*) override individual keys afterwards.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			applyEnvOverrides(&config)
			return config, nil
		}
		logging.Info("ConfigLoader", "Error loading config.yaml from %s: %s", configFilePath, err)
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		// config malformed
		return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}
	logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	applyEnvOverrides(&config)
	return config, nil
}

// applyEnvOverrides lets CHIRP_* variables take precedence over config.yaml
// so credentials can stay out of files on shared machines.
func applyEnvOverrides(config *Config) {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setString("CHIRP_API_KEY", &config.APIKey)
	setString("CHIRP_API_SECRET", &config.APISecret)
	setString("CHIRP_ACCESS_TOKEN", &config.AccessToken)
	setString("CHIRP_ACCESS_TOKEN_SECRET", &config.AccessTokenSecret)
	setString("CHIRP_CLIENT_ID", &config.ClientID)
	setString("CHIRP_REDIRECT_URI", &config.RedirectURI)

	if v, ok := os.LookupEnv("CHIRP_SCOPES"); ok {
		config.Scopes = strings.Fields(v)
	}
	if v, ok := os.LookupEnv("CHIRP_POST_EVERY_HOURS"); ok {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil {
			logging.Warn("ConfigLoader", "Ignoring CHIRP_POST_EVERY_HOURS=%q: %s", v, err)
		} else {
			config.PostEveryHours = hours
		}
	}
}
