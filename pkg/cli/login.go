package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ansible-community/ahctl/pkg/api"
	"github.com/ansible-community/ahctl/pkg/settings"
	"github.com/ansible-community/ahctl/pkg/util/console"
)

func newLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:        "login",
		SuggestFor: []string{"auth", "authenticate", "authorize"},
		Short:      "Log in to a private automation hub",
		Long: `Log in to a private automation hub.

Verifies the credentials against the hub and saves the hub address and API
token to ~/.config/ahctl/settings.json so later commands can run without
connection flags.`,
		RunE: login,
		Args: cobra.MaximumNArgs(0),
	}

	cmd.Flags().Bool("token-stdin", false, "Read an API token from stdin instead of prompting for a username and password")

	return cmd
}

func login(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	tokenStdin, err := cmd.Flags().GetBool("token-stdin")
	if err != nil {
		return err
	}

	cfg, err := clientConfig()
	if err != nil {
		return err
	}

	if cfg.Host == "" {
		if !console.IsTerminal() {
			return fmt.Errorf("No automation hub host given. Pass --hub or set AH_HOST")
		}
		cfg.Host, err = console.Interactive{Prompt: "Automation hub URL", Required: true}.Read()
		if err != nil {
			return err
		}
	}

	switch {
	case tokenStdin:
		token, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && token == "" {
			return fmt.Errorf("Failed to read the token from stdin: %w", err)
		}
		cfg.Token = strings.TrimSpace(token)
	case cfg.Token != "":
		// Keep the token from the flags, environment, or settings.
	default:
		if cfg.Username == "" {
			if !console.IsTerminal() {
				return fmt.Errorf("No credentials given. Pass --token or --username/--password, or use --token-stdin")
			}
			cfg.Username, err = console.Interactive{Prompt: "Username", Required: true}.Read()
			if err != nil {
				return err
			}
		}
		if cfg.Password == "" {
			cfg.Password, err = console.ReadPassword("Password")
			if err != nil {
				return err
			}
		}
	}

	client, err := api.NewClient(cfg)
	if err != nil {
		return err
	}
	if err := client.Authenticate(ctx); err != nil {
		return err
	}
	serverVersion, err := client.ServerVersion(ctx)
	if err != nil {
		return err
	}

	userSettings := settings.UserSettings{
		Host:      cfg.Host,
		Username:  cfg.Username,
		Token:     client.Token(),
		VerifySSL: !cfg.Insecure,
	}
	if err := userSettings.Save(); err != nil {
		return fmt.Errorf("Failed to save the settings: %w", err)
	}

	console.Infof("Logged in to %s (galaxy_ng %s)", client.Host(), serverVersion)
	return nil
}
