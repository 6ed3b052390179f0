package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings holds all configuration values
type Settings struct {
	// Server configuration
	Server struct {
		URL     string
		Timeout int
	}

	// Transcript configuration
	Transcript struct {
		// MaxMessages bounds the transcript; values <= 0 disable the cap.
		MaxMessages int
	}

	// Logging configuration
	Logging struct {
		LogFile string
		Persist bool
		Level   string
	}

	// ConfigFile stores the path to the config file used
	ConfigFile string
}

// Global settings instance
var Global *Settings

// Init initializes the configuration system
func Init(cfgFile string) error {
	Global = &Settings{}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		Global.ConfigFile = cfgFile
	} else {
		viper.AddConfigPath("./.scribe")
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
		Global.ConfigFile = ".scribe/settings.yaml"
	}

	setDefaults()

	viper.AutomaticEnv()

	// SCRIBE_SERVER_URL maps to server.url for containerized deployments
	viper.BindEnv("server.url", "SCRIBE_SERVER_URL")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	return Load()
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("server.url", "ws://localhost:8088/ws")
	viper.SetDefault("server.timeout", 30)

	viper.SetDefault("transcript.max_messages", 100)

	viper.SetDefault("logging.log_file", "system.log")
	viper.SetDefault("logging.persist", false)
	viper.SetDefault("logging.level", "info")
}

// Load loads configuration from viper into the Settings struct
func Load() error {
	Global.Server.URL = viper.GetString("server.url")
	Global.Server.Timeout = viper.GetInt("server.timeout")

	Global.Transcript.MaxMessages = viper.GetInt("transcript.max_messages")

	Global.Logging.LogFile = viper.GetString("logging.log_file")
	Global.Logging.Persist = viper.GetBool("logging.persist")
	Global.Logging.Level = viper.GetString("logging.level")

	return nil
}

// WriteDefaultConfig writes default configuration values to disk, preserving existing settings
func WriteDefaultConfig() error {
	if Global.ConfigFile == "" {
		return fmt.Errorf("config file path not set")
	}

	configDir := filepath.Dir(Global.ConfigFile)
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := viper.WriteConfigAs(Global.ConfigFile); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}

	return nil
}

// Get returns the global settings instance
func Get() *Settings {
	if Global == nil {
		panic("config not initialized - call Init() first")
	}
	return Global
}
