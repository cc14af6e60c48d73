// Package conf loads and validates tool configuration from config.yaml,
// environment variables and command line flags via viper.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// InputSettings holds the paths of the three source tables.
type InputSettings struct {
	Density     string // path to the point-based density survey CSV
	Habitat     string // path to the range-based habitat survey CSV
	Coordinates string // path to the site coordinate lookup CSV
}

// OutputSettings holds the output table locations.
type OutputSettings struct {
	Dir string // directory the event/occurrence/emof CSV files are written to
}

// WormsSettings configures the WoRMS taxonomic registry client.
type WormsSettings struct {
	BaseURL     string // WoRMS REST endpoint
	AphiaID     int    // taxon identifier resolved once per run
	Timeout     int    // request timeout in seconds
	CacheTTL    int    // response cache TTL in hours
	RateLimitMS int    // milliseconds between requests
}

// LogSettings configures the main application log file.
type LogSettings struct {
	Enabled bool
	Path    string
}

// MainSettings contains general application settings.
type MainSettings struct {
	Name string // name of the tool instance
	Log  LogSettings
}

// Settings is the root configuration struct unmarshalled from viper.
type Settings struct {
	Debug  bool
	Main   MainSettings
	Input  InputSettings
	Output OutputSettings
	Worms  WormsSettings
}

// settingsInstance is the current settings instance
var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	// Initialize viper and read config
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	// Unmarshal the config into settings
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	// Validate settings
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig writes a config.yaml populated with the default values
// to the working directory.
func createDefaultConfig() error {
	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return fmt.Errorf("error unmarshaling defaults: %w", err)
	}
	return SaveAs(settings, "config.yaml")
}

// SaveAs writes the given settings as YAML to the given path.
func SaveAs(settings *Settings, path string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to yaml: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// GetSettings returns the current settings instance, or nil before Load.
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Setting is a shorthand alias for GetSettings.
func Setting() *Settings {
	return GetSettings()
}
