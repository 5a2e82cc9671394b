package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the workdesk server and the desktop launcher.
type Config struct {
	// Listen is the address the workdesk server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// ServerURL is the base URL of the workdesk server, used by the launcher.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Session holds the session cookie configuration.
	Session *SessionConfig `yaml:"session" mapstructure:"session"`
	// Auth holds the local account policy configuration.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`
	// Launch holds the desktop launcher configuration.
	Launch *LaunchConfig `yaml:"launch" mapstructure:"launch"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the directory the sqlite database file is stored in.
	Path string `yaml:"path" mapstructure:"path"`
}

// SessionConfig holds the session cookie configuration.
type SessionConfig struct {
	// Key is the key used to authenticate session cookies.
	// If empty, a random key is generated on startup and sessions won't
	// survive a server restart.
	Key string `yaml:"key" mapstructure:"key"`
	// CookieName is the name of the session cookie.
	CookieName string `yaml:"cookie_name" mapstructure:"cookie_name"`
	// Secure marks the session cookie as https-only.
	Secure bool `yaml:"secure" mapstructure:"secure"`
	// RememberDays is the session lifetime in days when "remember me" is checked.
	RememberDays int `yaml:"remember_days" mapstructure:"remember_days"`
}

// AuthConfig holds the local account policy configuration.
type AuthConfig struct {
	// MinPasswordLength is the minimum length of a password at registration.
	MinPasswordLength int `yaml:"min_password_length" mapstructure:"min_password_length"`
}

// LaunchConfig holds the desktop launcher configuration.
type LaunchConfig struct {
	// Browser is the browser binary used for the app window.
	// If empty, a chromium-based browser is autodetected.
	Browser string `yaml:"browser" mapstructure:"browser"`
	// WindowWidth is the initial width of the app window.
	WindowWidth int `yaml:"window_width" mapstructure:"window_width"`
	// WindowHeight is the initial height of the app window.
	WindowHeight int `yaml:"window_height" mapstructure:"window_height"`
	// HealthAttempts is the number of health checks before the launcher gives up.
	HealthAttempts int `yaml:"health_attempts" mapstructure:"health_attempts"`
	// HealthIntervalSeconds is the interval between health checks in seconds.
	HealthIntervalSeconds int `yaml:"health_interval_seconds" mapstructure:"health_interval_seconds"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it searches the default locations and falls back to the
// built-in defaults when no config file exists.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("WORKDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.workdesk")
		v.AddConfigPath("/etc/workdesk")
	}

	if err := v.ReadInConfig(); err != nil {
		// A desktop install usually runs without a config file.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with WORKDESK_ prefix override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "127.0.0.1:8111")
	v.SetDefault("server_url", "http://127.0.0.1:8111")
	v.SetDefault("log_level", "info")

	v.SetDefault("database.path", "./data")

	v.SetDefault("session.key", "")
	v.SetDefault("session.cookie_name", "workdesk_session")
	v.SetDefault("session.secure", false)
	v.SetDefault("session.remember_days", 30)

	v.SetDefault("auth.min_password_length", 8)

	v.SetDefault("launch.browser", "")
	v.SetDefault("launch.window_width", 1200)
	v.SetDefault("launch.window_height", 800)
	v.SetDefault("launch.health_attempts", 30)
	v.SetDefault("launch.health_interval_seconds", 1)
}

func validateConfig(c *Config) error {
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.ServerURL == "" {
		return fmt.Errorf("server_url must not be empty")
	}
	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Session.RememberDays <= 0 {
		return fmt.Errorf("session remember_days must be positive")
	}
	if c.Auth.MinPasswordLength < 1 {
		return fmt.Errorf("auth min_password_length must be positive")
	}
	if c.Launch.HealthAttempts < 1 || c.Launch.HealthIntervalSeconds < 1 {
		return fmt.Errorf("launch health poll settings must be positive")
	}
	return nil
}
