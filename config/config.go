package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file
type Config struct {
	Version               string         `mapstructure:"version"`
	Theme                 string         `mapstructure:"theme"`
	OutputFormat          string         `mapstructure:"output_format"`
	LogLevel              string         `mapstructure:"log_level"`
	EnableCache           bool           `mapstructure:"enable_cache"`
	LenientExtraction     bool           `mapstructure:"lenient_extraction"`
	DecodeEscapedNewlines bool           `mapstructure:"decode_escaped_newlines"`
	AssetExtensions       []string       `mapstructure:"asset_extensions"`
	Preview               *PreviewConfig `mapstructure:"preview"`
}

// PreviewConfig holds the metadata sent with a Snack preview bundle.
type PreviewConfig struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	SDKVersion  string `mapstructure:"sdk_version"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:               "0.3.0",
	Theme:                 "dracula",
	OutputFormat:          "text",
	LogLevel:              "warn",
	EnableCache:           true,
	LenientExtraction:     false,
	DecodeEscapedNewlines: false,
	AssetExtensions:       []string{},
	Preview: &PreviewConfig{
		Name:        "AI Generated Preview",
		Description: "Preview from AI-generated code",
		SDKVersion:  "52.0.0",
	},
}

var outputFormats = map[string]bool{"text": true, "json": true, "yaml": true}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// envFile holds the path to a dotenv file preloaded into the environment (set via CLI)
var envFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()

	// Set default values using Viper
	setDefaults(v)

	// Automatically read environment variables
	v.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv(v)

	if cfgFile != "" {
		// Use the config file from the flag
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		// Look for snackforge-config.{yml,yaml,json} in the current working directory
		v.SetConfigName("snackforge-config")
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Bind CLI flags to override config values
	bindFlags(v, rootCmd)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if !outputFormats[config.OutputFormat] {
		return nil, fmt.Errorf("unsupported output format %q (use text, json or yaml)", config.OutputFormat)
	}

	return &config, nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("output_format", DefaultConfig.OutputFormat)
	v.SetDefault("log_level", DefaultConfig.LogLevel)
	v.SetDefault("enable_cache", DefaultConfig.EnableCache)
	v.SetDefault("lenient_extraction", DefaultConfig.LenientExtraction)
	v.SetDefault("decode_escaped_newlines", DefaultConfig.DecodeEscapedNewlines)
	v.SetDefault("asset_extensions", DefaultConfig.AssetExtensions)
	v.SetDefault("preview.name", DefaultConfig.Preview.Name)
	v.SetDefault("preview.description", DefaultConfig.Preview.Description)
	v.SetDefault("preview.sdk_version", DefaultConfig.Preview.SDKVersion)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("theme", "THEME")
	_ = v.BindEnv("output_format", "OUTPUT_FORMAT")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("enable_cache", "ENABLE_CACHE")
	_ = v.BindEnv("lenient_extraction", "LENIENT_EXTRACTION")
	_ = v.BindEnv("decode_escaped_newlines", "DECODE_ESCAPED_NEWLINES")
	_ = v.BindEnv("asset_extensions", "ASSET_EXTENSIONS")
	_ = v.BindEnv("preview.name", "SNACK_NAME")
	_ = v.BindEnv("preview.description", "SNACK_DESCRIPTION")
	_ = v.BindEnv("preview.sdk_version", "SNACK_SDK_VERSION")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(v *viper.Viper, rootCmd *cobra.Command) {
	_ = v.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = v.BindPFlag("output_format", rootCmd.PersistentFlags().Lookup("output_format"))
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))
	_ = v.BindPFlag("enable_cache", rootCmd.PersistentFlags().Lookup("enable_cache"))
	_ = v.BindPFlag("lenient_extraction", rootCmd.PersistentFlags().Lookup("lenient_extraction"))
	_ = v.BindPFlag("decode_escaped_newlines", rootCmd.PersistentFlags().Lookup("decode_escaped_newlines"))
	_ = v.BindPFlag("asset_extensions", rootCmd.PersistentFlags().Lookup("asset_extensions"))
	_ = v.BindPFlag("preview.sdk_version", rootCmd.PersistentFlags().Lookup("sdk_version"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Path to a dotenv file loaded into the environment before configuration is read.")

	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set the highlighting theme for generated files and chat replies. (e.g., 'dracula', 'monokai', 'light')")
	rootCmd.PersistentFlags().StringP("output_format", "o", DefaultConfig.OutputFormat, "Set report format: 'text', 'json' or 'yaml'")
	rootCmd.PersistentFlags().String("log_level", DefaultConfig.LogLevel, "Set diagnostics level on stderr (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("enable_cache", DefaultConfig.EnableCache, "Reuse derived tree, dependencies and preview for identical file maps")
	rootCmd.PersistentFlags().Bool("lenient_extraction", DefaultConfig.LenientExtraction, "Also look for an unfenced JSON object embedded in prose")
	rootCmd.PersistentFlags().Bool("decode_escaped_newlines", DefaultConfig.DecodeEscapedNewlines, "Turn literal \\n sequences in file contents into newlines")
	rootCmd.PersistentFlags().StringSlice("asset_extensions", DefaultConfig.AssetExtensions, "Additional file extensions previewed as assets (e.g., 'webp,mp3')")
	rootCmd.PersistentFlags().String("sdk_version", DefaultConfig.Preview.SDKVersion, "Expo SDK version sent with preview bundles")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}
