// Package config loads fortunelog-dev configuration from config.yaml and
// FORTUNELOG_* environment variables using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fortunelog/fortunelog-dev/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "FORTUNELOG"
)

// Config keys.
const (
	KeyEnvFile        = "env_file"
	KeyTasks          = "tasks"
	KeySplashChannel  = "splash.channel"
	KeySplashDelay    = "splash.delay"
	KeySplashDuration = "splash.duration"
	KeySplashLogoSize = "splash.logo_size"
)

// Defaults applied before the file and environment are read.
const (
	DefaultEnvFile        = ".env"
	DefaultSplashChannel  = "fortunelog/splash"
	DefaultSplashDelay    = 50 * time.Millisecond
	DefaultSplashDuration = 220 * time.Millisecond
	DefaultLogoSize       = 120.0
)

// Default returns the configuration used when no file is present. The
// bootRun task mirrors the Gradle task the env loader was written for.
func Default() types.Config {
	return types.Config{
		EnvFile: DefaultEnvFile,
		Tasks: map[string]types.TaskConfig{
			types.DefaultTaskName: {Command: "./gradlew", Args: []string{"bootRun"}},
		},
		Splash: types.SplashConfig{
			Channel:  DefaultSplashChannel,
			Delay:    DefaultSplashDelay,
			Duration: DefaultSplashDuration,
			LogoSize: DefaultLogoSize,
		},
	}
}

// Load reads config.yaml from configDir. A missing file is not an error: the
// defaults plus any FORTUNELOG_* overrides are returned. The result is
// validated before it is returned.
func Load(configDir string) (types.Config, error) {
	v := newViper()
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Tasks) == 0 {
		cfg.Tasks = Default().Tasks
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	def := Default()

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyEnvFile, def.EnvFile)
	v.SetDefault(KeySplashChannel, def.Splash.Channel)
	v.SetDefault(KeySplashDelay, def.Splash.Delay)
	v.SetDefault(KeySplashDuration, def.Splash.Duration)
	v.SetDefault(KeySplashLogoSize, def.Splash.LogoSize)
	return v
}

// Path returns the config.yaml path inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, configFileExt)
}

// fileHeader is written above the generated YAML.
const fileHeader = `# fortunelog-dev configuration
# env_file is resolved against each task's dir unless absolute.
# Every key can be overridden with FORTUNELOG_<KEY>, e.g. FORTUNELOG_SPLASH_DELAY=80ms.
`

// fileConfig mirrors types.Config with durations as strings for YAML output.
type fileConfig struct {
	EnvFile string                      `yaml:"env_file"`
	Tasks   map[string]types.TaskConfig `yaml:"tasks"`
	Splash  struct {
		Channel  string  `yaml:"channel"`
		Delay    string  `yaml:"delay"`
		Duration string  `yaml:"duration"`
		LogoSize float64 `yaml:"logo_size"`
	} `yaml:"splash"`
}

// WriteDefault creates configDir and writes a default config.yaml unless one
// already exists. It reports whether a file was written.
func WriteDefault(configDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	path := Path(configDir)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	def := Default()
	var fc fileConfig
	fc.EnvFile = def.EnvFile
	fc.Tasks = def.Tasks
	fc.Splash.Channel = def.Splash.Channel
	fc.Splash.Delay = def.Splash.Delay.String()
	fc.Splash.Duration = def.Splash.Duration.String()
	fc.Splash.LogoSize = def.Splash.LogoSize

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(fileHeader), data...), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
