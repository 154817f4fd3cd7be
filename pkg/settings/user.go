package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/ansible-community/ahctl/pkg/files"
	"github.com/ansible-community/ahctl/pkg/util/console"
)

// UserSettings holds the connection details saved by `ahctl login` so they do
// not have to be passed on every invocation.
type UserSettings struct {
	Host      string `json:"host"`
	Username  string `json:"username,omitempty"`
	Token     string `json:"token,omitempty"`
	VerifySSL bool   `json:"verify_ssl"`
}

// LoadUserSettings loads the saved settings from disk, returning a default
// struct if no file exists
func LoadUserSettings() (*UserSettings, error) {
	settings := UserSettings{
		VerifySSL: true,
	}

	settingsPath, err := userSettingsPath()
	if err != nil {
		return nil, err
	}

	exists, err := files.Exists(settingsPath)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &settings, nil
	}
	text, err := os.ReadFile(settingsPath)
	if err != nil {
		console.Warnf("Failed to read %s: %s", settingsPath, err)
		return &settings, nil
	}

	if err := json.Unmarshal(text, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Save writes the settings to disk
func (s *UserSettings) Save() error {
	settingsPath, err := userSettingsPath()
	if err != nil {
		return err
	}

	bytes, err := json.MarshalIndent(s, "", " ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0o700); err != nil {
		return err
	}

	// The file may hold an API token, so keep it private.
	return os.WriteFile(settingsPath, bytes, 0o600)
}

func UserSettingsDir() (string, error) {
	return homedir.Expand("~/.config/ahctl")
}

func userSettingsPath() (string, error) {
	dir, err := UserSettingsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}
