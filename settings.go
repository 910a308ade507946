package hub

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRegistryURL is the registry index used when no override is
// configured.
const DefaultRegistryURL = "https://api.dspyhub.com/index.json"

// Environment variables consulted by LoadSettings.
const (
	// RegistryEnvVar overrides the registry location. A value without a
	// URL scheme is treated as a local filesystem path.
	RegistryEnvVar = "DSPY_HUB_REGISTRY"

	// DevKeyEnvVar supplies the developer key for publish operations when
	// no explicit key is passed.
	DevKeyEnvVar = "DSPY_HUB_DEV_KEY"

	// ConfigEnvVar overrides the config file location.
	ConfigEnvVar = "DSPY_HUB_CONFIG"
)

// Settings is the process-wide runtime configuration, read-only after
// load. Resolution order for each field: environment variable, config
// file, built-in default.
type Settings struct {
	// Registry is the registry index URL or local registry directory.
	Registry string

	// DevKey is the developer key for publish operations. Empty when not
	// configured.
	DevKey string
}

// configFile mirrors the YAML config file layout.
type configFile struct {
	Registry string `yaml:"registry"`
	DevKey   string `yaml:"dev_key"`
}

// LoadSettings returns runtime settings from a fresh environment
// snapshot. It is a pure function of the environment and the optional
// config file; nothing is cached across calls.
//
// The config file is looked up at $DSPY_HUB_CONFIG or
// <user config dir>/dspy-hub/config.yaml. A missing or unreadable config
// file is not an error; it is best-effort enrichment.
func LoadSettings() Settings {
	s := Settings{Registry: DefaultRegistryURL}

	if cf, ok := readConfigFile(); ok {
		if cf.Registry != "" {
			s.Registry = normalizeRegistry(cf.Registry)
		}
		if cf.DevKey != "" {
			s.DevKey = cf.DevKey
		}
	}

	if override := strings.TrimSpace(os.Getenv(RegistryEnvVar)); override != "" {
		s.Registry = normalizeRegistry(override)
	}
	if key := os.Getenv(DevKeyEnvVar); key != "" {
		s.DevKey = key
	}

	return s
}

// normalizeRegistry expands a scheme-less registry override into a local
// filesystem path. URL overrides pass through untouched.
func normalizeRegistry(location string) string {
	if strings.Contains(location, "://") {
		return location
	}
	return expandUser(location)
}

// expandUser replaces a leading "~" with the current user's home
// directory. The path is returned unchanged if the home directory cannot
// be determined.
func expandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// readConfigFile reads and parses the YAML config file.
// Returns ok=false if the file is absent, unreadable, or malformed.
func readConfigFile() (configFile, bool) {
	path := os.Getenv(ConfigEnvVar)
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return configFile{}, false
		}
		path = filepath.Join(dir, "dspy-hub", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return configFile{}, false
	}

	var cf configFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return configFile{}, false
	}
	return cf, true
}
