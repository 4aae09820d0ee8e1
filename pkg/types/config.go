package types

import (
	"errors"
	"strings"
	"time"
)

// Config is the fortunelog-dev configuration, loaded from config.yaml and
// FORTUNELOG_* environment variables.
type Config struct {
	EnvFile string                `mapstructure:"env_file" yaml:"env_file"`
	Tasks   map[string]TaskConfig `mapstructure:"tasks" yaml:"tasks"`
	Splash  SplashConfig          `mapstructure:"splash" yaml:"splash"`
}

// TaskConfig describes a named local launch task.
type TaskConfig struct {
	Command string   `mapstructure:"command" yaml:"command"`
	Args    []string `mapstructure:"args" yaml:"args,omitempty"`
	Dir     string   `mapstructure:"dir" yaml:"dir,omitempty"`
	EnvFile string   `mapstructure:"env_file" yaml:"env_file,omitempty"`
}

// SplashConfig holds the splash bridge tuning values.
type SplashConfig struct {
	Channel  string        `mapstructure:"channel" yaml:"channel"`
	Delay    time.Duration `mapstructure:"delay" yaml:"delay"`
	Duration time.Duration `mapstructure:"duration" yaml:"duration"`
	LogoSize float64       `mapstructure:"logo_size" yaml:"logo_size"`
}

// DefaultTaskName is the task run when none is named.
const DefaultTaskName = "bootRun"

// Config validation errors.
var (
	ErrTaskUnknown     = errors.New("unknown task")
	ErrCommandEmpty    = errors.New("task command must not be empty")
	ErrChannelEmpty    = errors.New("splash channel must not be empty")
	ErrDelayInvalid    = errors.New("splash delay must not be negative")
	ErrDurationInvalid = errors.New("splash duration must be positive")
	ErrLogoSizeInvalid = errors.New("splash logo size must be positive")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	for _, task := range c.Tasks {
		if err := task.Validate(); err != nil {
			return err
		}
	}
	return c.Splash.Validate()
}

// Validate checks the task definition.
func (t TaskConfig) Validate() error {
	if t.Command == "" {
		return ErrCommandEmpty
	}
	return nil
}

// Validate checks the splash tuning values.
func (s SplashConfig) Validate() error {
	if s.Channel == "" {
		return ErrChannelEmpty
	}
	if s.Delay < 0 {
		return ErrDelayInvalid
	}
	if s.Duration <= 0 {
		return ErrDurationInvalid
	}
	if s.LogoSize <= 0 {
		return ErrLogoSizeInvalid
	}
	return nil
}

// Task returns the named task definition or ErrTaskUnknown. Names match
// case-insensitively because Viper lowercases map keys read from YAML.
func (c Config) Task(name string) (TaskConfig, error) {
	if t, ok := c.Tasks[name]; ok {
		return t, nil
	}
	for k, t := range c.Tasks {
		if strings.EqualFold(k, name) {
			return t, nil
		}
	}
	return TaskConfig{}, ErrTaskUnknown
}
