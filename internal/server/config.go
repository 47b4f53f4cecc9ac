package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/caarlos0/env/v11"
	"github.com/iwvelando/poverty-level/internal/config"
	"github.com/iwvelando/poverty-level/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string               `yaml:"address"`
	MaxUploadSize   string               `yaml:"maxUploadSize"`
	Logging         config.LoggingConfig `yaml:"logging"`
	uploadSizeBytes int64
}

// envOverrides are applied on top of the YAML file.
type envOverrides struct {
	Address       string `env:"FPL_SERVER_ADDRESS"`
	MaxUploadSize string `env:"FPL_SERVER_MAX_UPLOAD_SIZE"`
	LogLevel      string `env:"FPL_LOG_LEVEL"`
	LogFormat     string `env:"FPL_LOG_FORMAT"`
	LogFile       string `env:"FPL_LOG_FILE"`
}

// LoadConfig loads the server configuration from YAML and then applies any
// FPL_* environment overrides. If the file does not exist, defaults are used
// without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:         constants.DefaultServerAddress,
		MaxUploadSize:   fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes),
		Logging:         config.LoggingConfig{},
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("failed to parse server environment: %w", err)
	}

	if overrides.Address != "" {
		c.Address = overrides.Address
	}
	if overrides.MaxUploadSize != "" {
		c.MaxUploadSize = overrides.MaxUploadSize
	}
	if overrides.LogLevel != "" {
		c.Logging.Level = overrides.LogLevel
	}
	if overrides.LogFormat != "" {
		c.Logging.Format = overrides.LogFormat
	}
	if overrides.LogFile != "" {
		c.Logging.OutputFile = overrides.LogFile
	}
	return nil
}

// UploadSizeBytes returns the configured upload size in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes overrides the configured upload size.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size > 0 {
		c.uploadSizeBytes = size
		c.MaxUploadSize = fmt.Sprintf("%d", size)
	}
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	sizeStr := strings.TrimSpace(c.MaxUploadSize)
	if sizeStr == "" {
		c.uploadSizeBytes = constants.DefaultMaxUploadSizeBytes
		c.MaxUploadSize = fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative size %q", value)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n * multiplier, nil
}
