// Package config provides centralized configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName names the configuration directory.
	AppName = "issues-helper"
	// FileName is the configuration file inside the AppName directory.
	FileName = "config.toml"
	// EnvPrefix prefixes the environment overrides, e.g. GLI_GITLAB_TOKEN.
	EnvPrefix = "GLI"
	// PathEnv overrides the configuration file location.
	PathEnv = "GLI_CONFIG"
)

const (
	keyGitLabDomain = "gitlab_domain"
	keyGitLabToken  = "gitlab_token"
	keyGitHubToken  = "github_token"
)

// ErrNotConfigured is returned when neither a configuration file nor
// environment overrides exist.
var ErrNotConfigured = errors.New("it looks like you've not configured me yet, please run `gli init` so we can get going")

// Config holds all configuration parameters for the application.
type Config struct {
	// GitLabDomain is the host of the GitLab instance, e.g. gitlab.example.org
	GitLabDomain string
	GitLabToken  string
	GitHubToken  string
}

// ResolvePath picks the configuration file: the explicit path if set, then
// $GLI_CONFIG, then <user config dir>/issues-helper/config.toml.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user configuration directory: %w", err)
	}
	return filepath.Join(dir, AppName, FileName), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv(keyGitLabDomain)
	_ = v.BindEnv(keyGitLabToken)
	_ = v.BindEnv(keyGitHubToken)
	return v
}

// LoadConfig reads the TOML file at path and applies GLI_* environment
// overrides. A missing file is only an error when no override is set either.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	fileFound := false
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read configuration %s: %w", path, err)
		}
		fileFound = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat configuration %s: %w", path, err)
	}

	config := &Config{
		GitLabDomain: strings.TrimSpace(v.GetString(keyGitLabDomain)),
		GitLabToken:  v.GetString(keyGitLabToken),
		GitHubToken:  v.GetString(keyGitHubToken),
	}

	if !fileFound && *config == (Config{}) {
		return nil, ErrNotConfigured
	}

	return config, nil
}

// SaveConfig writes config as TOML to path, creating the directory if needed.
// The file holds tokens and is only readable by its owner.
func SaveConfig(path string, config *Config) error {
	if err := Validate(config); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigPermissions(0o600)
	v.Set(keyGitLabDomain, config.GitLabDomain)
	v.Set(keyGitLabToken, config.GitLabToken)
	v.Set(keyGitHubToken, config.GitHubToken)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write configuration %s: %w", path, err)
	}
	return nil
}

// Validate ensures that all required configuration values are provided.
// Tokens may be empty, the backends report authentication failures.
func Validate(config *Config) error {
	var missing []string

	if config.GitLabDomain == "" {
		missing = append(missing, keyGitLabDomain)
	}
	if !validDomain(config.GitLabDomain) {
		return fmt.Errorf("gitlab_domain must be a bare host name with an optional port (eg gitlab.example.org), got %q", config.GitLabDomain)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration values: %v", missing)
	}
	return nil
}

// validDomain accepts "host" and "host:port", as found in https remotes.
func validDomain(domain string) bool {
	if domain == "" {
		return true
	}
	if strings.ContainsAny(domain, "/ \t") {
		return false
	}
	if !strings.Contains(domain, ":") {
		return true
	}

	host, port, err := net.SplitHostPort(domain)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	return err == nil && n > 0 && n <= 65535
}
