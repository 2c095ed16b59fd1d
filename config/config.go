package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel  int    `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	FFmpegPath      string `yaml:"ffmpeg_path"`
	ContinueOnError bool   `yaml:"continue_on_error"`
	VerifyTags      bool   `yaml:"verify_tags"`
	Progress        *bool  `yaml:"progress"`

	Storage StorageConfig `yaml:"storage"`
}

type StorageConfig struct {
	// Type of storage: "local" or "gcs"
	Type string `yaml:"type"`

	// Local directory tracks are written to
	OutputDir string `yaml:"output_dir"`

	// GCS options
	Bucket          string `yaml:"bucket"`
	ObjectPrefix    string `yaml:"object_prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ShowProgress reports whether the progress bar is enabled. It defaults to on.
func (c *Config) ShowProgress() bool {
	return c.Progress == nil || *c.Progress
}

// Load reads the YAML config at path, applies TRACKSPLIT_* environment
// overrides (a .env file in the working directory is loaded first) and fills
// in defaults. A missing config file is not an error.
func Load(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("No config file, using defaults", "path", path)
	case err != nil:
		return nil, err
	default:
		// Unmarshal the YAML data into the struct
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	// Set defaults if not provided
	if config.LogFormat == "" {
		config.LogFormat = LogFormatText
	}

	if config.FFmpegPath == "" {
		config.FFmpegPath = "ffmpeg"
	}

	if config.Storage.Type == "" {
		config.Storage.Type = "local"
	}

	return config, nil
}

func applyEnv(config *Config) error {
	stringVars := map[string]*string{
		"TRACKSPLIT_LOG_FORMAT":           &config.LogFormat,
		"TRACKSPLIT_FFMPEG_PATH":          &config.FFmpegPath,
		"TRACKSPLIT_STORAGE_TYPE":         &config.Storage.Type,
		"TRACKSPLIT_OUTPUT_DIR":           &config.Storage.OutputDir,
		"TRACKSPLIT_GCS_BUCKET":           &config.Storage.Bucket,
		"TRACKSPLIT_GCS_OBJECT_PREFIX":    &config.Storage.ObjectPrefix,
		"TRACKSPLIT_GCS_CREDENTIALS_FILE": &config.Storage.CredentialsFile,
	}
	for key, target := range stringVars {
		if value, ok := os.LookupEnv(key); ok {
			*target = value
		}
	}

	boolVars := map[string]*bool{
		"TRACKSPLIT_CONTINUE_ON_ERROR": &config.ContinueOnError,
		"TRACKSPLIT_VERIFY_TAGS":       &config.VerifyTags,
	}
	for key, target := range boolVars {
		if value, ok := os.LookupEnv(key); ok {
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*target = parsed
		}
	}

	if value, ok := os.LookupEnv("TRACKSPLIT_PROGRESS"); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid TRACKSPLIT_PROGRESS: %w", err)
		}
		config.Progress = &parsed
	}

	if value, ok := os.LookupEnv("TRACKSPLIT_LOG_LEVEL"); ok {
		level, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TRACKSPLIT_LOG_LEVEL: %w", err)
		}
		config.LogLevel = level
	}

	return nil
}
