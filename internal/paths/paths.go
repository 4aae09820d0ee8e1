// Package paths resolves the configuration directory and dotenv file locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Names used for project-local defaults.
const (
	DefaultConfigDirName = ".fortunelog"
	DefaultEnvFileName   = ".env"
	appDirName           = "fortunelog"
)

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "FORTUNELOG_CONFIG_DIR"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the platform-specific user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/fortunelog (fallback ~/.config/fortunelog)
// macOS:   ~/Library/Application Support/fortunelog
// Windows: %APPDATA%/fortunelog
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > FORTUNELOG_CONFIG_DIR env > $(CWD)/.fortunelog when it exists >
// DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	local := filepath.Join(cwd, DefaultConfigDirName)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local, nil
	}
	return DefaultConfigDir()
}

// ProjectConfigDir returns $(CWD)/.fortunelog, the directory init writes to
// when no override is given.
func ProjectConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveEnvFile returns the dotenv path for a launch following the precedence
// chain: flag > configured value > .env. A flag is resolved against the working
// directory; configured and default values are resolved against baseDir (the
// task directory) when they are relative and baseDir is set.
func ResolveEnvFile(flag, configured, baseDir string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	name := configured
	if name == "" {
		name = DefaultEnvFileName
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	if baseDir != "" {
		return filepath.Abs(filepath.Join(baseDir, name))
	}
	return filepath.Abs(name)
}
