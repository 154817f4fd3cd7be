package cli

import (
	"github.com/ansible-community/ahctl/pkg/api"
	"github.com/ansible-community/ahctl/pkg/ee"
	"github.com/ansible-community/ahctl/pkg/env"
	"github.com/ansible-community/ahctl/pkg/pulp"
	"github.com/ansible-community/ahctl/pkg/settings"
	"github.com/ansible-community/ahctl/pkg/ui"
)

// clientConfig resolves the connection details: flags win over environment
// variables, which win over the settings saved by `ahctl login`.
func clientConfig() (api.Config, error) {
	userSettings, err := settings.LoadUserSettings()
	if err != nil {
		return api.Config{}, err
	}

	return api.Config{
		Host:     firstNonEmpty(hubFlag, env.HostFromEnvironment(), userSettings.Host),
		Username: firstNonEmpty(usernameFlag, env.UsernameFromEnvironment(), userSettings.Username),
		Password: firstNonEmpty(passwordFlag, env.PasswordFromEnvironment()),
		Token:    firstNonEmpty(tokenFlag, env.TokenFromEnvironment(), userSettings.Token),
		Insecure: insecureFlag || !env.VerifySSLFromEnvironment() || !userSettings.VerifySSL,
	}, nil
}

func newAPIClient() (*api.Client, error) {
	cfg, err := clientConfig()
	if err != nil {
		return nil, err
	}
	return api.NewClient(cfg)
}

func newApplier(checkMode bool) (*ee.Applier, error) {
	apiClient, err := newAPIClient()
	if err != nil {
		return nil, err
	}
	return &ee.Applier{
		Hub:       apiClient,
		Repos:     pulp.NewClient(apiClient),
		Images:    ui.NewClient(apiClient),
		CheckMode: checkMode,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
