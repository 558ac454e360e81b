// Package viper loads client configuration from defaults, an optional YAML
// file, MEDICHAT_* environment variables and bound command-line flags.
package viper

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyServerURL     = "server.url"
	KeyServerTimeout = "server.timeout"
	KeyStorePath     = "store.path"
	KeyDebug         = "debug"
	KeyLogPath       = "log.path"
)

const (
	envPrefix = "MEDICHAT"
	dirName   = ".medichat"
)

// Config is the resolved client configuration.
type Config struct {
	ServerURL string
	Timeout   time.Duration
	StorePath string
	Debug     bool
	LogPath   string
}

// New returns a viper instance with defaults, the config search path under
// home and environment binding set up. Flags are bound by the caller with
// BindPFlag before Load.
func New(home string) *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyServerURL, "http://localhost:8000")
	v.SetDefault(KeyServerTimeout, "30s")
	v.SetDefault(KeyStorePath, filepath.Join(home, dirName, "auth.json"))
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogPath, "medichat-debug.log")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(home, dirName))

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file when present and returns the validated
// configuration.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		ServerURL: strings.TrimRight(v.GetString(KeyServerURL), "/"),
		Timeout:   v.GetDuration(KeyServerTimeout),
		StorePath: expandHome(v.GetString(KeyStorePath)),
		Debug:     v.GetBool(KeyDebug),
		LogPath:   v.GetString(KeyLogPath),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the server URL, timeout and store path.
func (c Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: want http(s)://host[:port]", KeyServerURL, c.ServerURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid %s %s: must be positive", KeyServerTimeout, c.Timeout)
	}
	if c.StorePath == "" {
		return fmt.Errorf("%s must not be empty", KeyStorePath)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
