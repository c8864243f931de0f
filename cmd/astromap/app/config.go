package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/astromap/pkg/constants"
	"github.com/agentstation/astromap/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Scraper configuration
	InputDir      string
	OutputDir     string
	PolicyFile    string
	BaseURL       string
	WritePartials bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (ASTROMAP_INPUT_DIR, ...)
// 3. .env files
// 4. Config file (~/.astromap.yaml or ./.astromap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile(os.Getenv("ASTROMAP_CONFIG"))
}

// LoadConfigFile loads configuration like LoadConfig but reads the given
// config file instead of searching for .astromap.yaml. An explicit file that
// cannot be read is an error.
func LoadConfigFile(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix("astromap")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("input_dir", constants.DefaultInputDir)
	v.SetDefault("output_dir", constants.DefaultOutputDir)
	v.SetDefault("base_url", constants.DefaultBaseURL)
	v.SetDefault("write_partials", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".astromap")

		// Read config file (ignore error if not found)
		_ = v.ReadInConfig()
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		InputDir:      v.GetString("input_dir"),
		OutputDir:     v.GetString("output_dir"),
		PolicyFile:    v.GetString("policy_file"),
		BaseURL:       v.GetString("base_url"),
		WritePartials: v.GetBool("write_partials"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags so flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded last but godotenv never overrides a variable that
// is already set, so the first file to define a variable wins.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
