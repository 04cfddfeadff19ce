// Package asdp contains the version and the home directory of the
// survey data processing client.
package asdp

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// Version is the client version.
const Version = "0.3.0"

// UserAgent is the default user agent.
const UserAgent = "asdp/" + Version

// HomeEnv is the environment variable overriding the home directory.
const HomeEnv = "ASDP_HOME"

// GetHome returns the path to the asdp home directory.
func GetHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(home, ".asdp")
	return path, nil
}

// DefaultSettingsPath returns the path of the settings file inside the home directory.
func DefaultSettingsPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "settings.hujson"), nil
}
