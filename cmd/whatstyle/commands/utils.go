/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the whatstyle commands. Provides common
configuration loading, logging setup, and construction helpers used across all
command implementations.
*/

package commands

import (
	"fmt"
	"time"

	"github.com/kleascm/whatstyle-go/pkg/diffmetric"
	"github.com/kleascm/whatstyle-go/pkg/formatter"
	"github.com/kleascm/whatstyle-go/pkg/logging"
	"github.com/kleascm/whatstyle-go/pkg/style"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from files and environment.
func LoadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("WHATSTYLE")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the logrus package-level logger used for quick
// CLI diagnostics. The structured pkg/logging.Logger is used by the search
// engine for its per-phase logging and by the commands for candidate and
// cache-statistics logging.
func SetupLogging() error {
	logLevel := viper.GetString("log_level")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return nil
}

// BuildLogger constructs the structured pkg/logging.Logger used by the search
// engine for its per-phase logging, from the same viper
// keys SetupLogging reads for the package-level logrus logger.
func BuildLogger() (*logging.Logger, error) {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevel(viper.GetString("log_level")),
		Format:    logging.LogFormat(viper.GetString("log_format")),
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  viper.GetInt("log_max_files"),
		MaxSize:   viper.GetInt64("log_max_size"),
		Timestamp: true,
		Caller:    true,
		Colors:    true,
		Compress:  viper.GetBool("log_compress"),
	})
}

// BuildFormatter constructs the named Formatter adapter.
func BuildFormatter(name, binary, extraArgs string, timeout time.Duration) (formatter.Formatter, error) {
	switch name {
	case "clang-format":
		return formatter.NewClangFormat(binary, extraArgs, timeout)
	case "indent":
		return formatter.NewIndent(), nil
	default:
		return nil, fmt.Errorf("unknown formatter %q (known: clang-format, indent)", name)
	}
}

// BuildMetric constructs a diff Metric for the requested backend.
func BuildMetric(backend string, timeout time.Duration) (*diffmetric.Metric, error) {
	return diffmetric.New(diffmetric.Backend(backend), timeout)
}

// LoadSources reads every named file path into a style.SourceFile slice.
func LoadSources(paths []string, readFile func(string) ([]byte, error)) ([]style.SourceFile, error) {
	sources := make([]style.SourceFile, 0, len(paths))
	for _, p := range paths {
		content, err := readFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		sources = append(sources, style.SourceFile{Path: p, Content: content})
	}
	return sources, nil
}
