// Package config loads process settings from the environment. CLI flags
// override these values.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings holds process-wide options.
type Settings struct {
	LogLevel     string        `env:"BUILDSCRIPT_LOG_LEVEL" envDefault:"info"`
	LogFormat    string        `env:"BUILDSCRIPT_LOG_FORMAT" envDefault:"auto"`
	File         string        `env:"BUILDSCRIPT_FILE"`
	ProjectDir   string        `env:"BUILDSCRIPT_PROJECT_DIR" envDefault:"."`
	HTTPTimeout  time.Duration `env:"BUILDSCRIPT_HTTP_TIMEOUT" envDefault:"30s"`
	OTELEndpoint string        `env:"BUILDSCRIPT_OTEL_ENDPOINT"`
}

// Log formats accepted by LogFormat.
const (
	LogFormatAuto    = "auto"
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Load reads Settings from the environment.
func Load() (Settings, error) {
	return LoadFrom(nil)
}

// LoadFrom reads Settings from environ instead of the process environment
// when environ is non-nil.
func LoadFrom(environ map[string]string) (Settings, error) {
	var s Settings
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	switch s.LogFormat {
	case LogFormatAuto, LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("parse env: BUILDSCRIPT_LOG_FORMAT must be one of auto, console, json (got %q)", s.LogFormat)
	}
	if s.HTTPTimeout <= 0 {
		return fmt.Errorf("parse env: BUILDSCRIPT_HTTP_TIMEOUT must be positive (got %s)", s.HTTPTimeout)
	}
	return nil
}

// HumanReadable decides between console and JSON log output.
func (s Settings) HumanReadable(isTerminal bool) bool {
	switch s.LogFormat {
	case LogFormatConsole:
		return true
	case LogFormatJSON:
		return false
	default:
		return isTerminal
	}
}
