package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ansible-community/ahctl/pkg/global"
	"github.com/ansible-community/ahctl/pkg/util/console"
)

var (
	hubFlag      string
	usernameFlag string
	passwordFlag string
	tokenFlag    string
	insecureFlag bool
)

func NewRootCommand() (*cobra.Command, error) {
	rootCmd := cobra.Command{
		Use:     "ahctl",
		Short:   "Manage execution environment images in a private automation hub",
		Version: fmt.Sprintf("%s (built %s)", global.Version, global.BuildTime),
		// Errors are printed once, in cmd/ahctl/main.go
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if global.Verbose {
				console.SetLevel(console.DebugLevel)
			}
			cmd.SilenceUsage = true
		},
		SilenceErrors: true,
	}
	setPersistentFlags(&rootCmd)

	rootCmd.AddCommand(
		newImageCommand(),
		newLoginCommand(),
	)

	return &rootCmd, nil
}

func setPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().StringVar(&hubFlag, "hub", "", "Automation hub URL, e.g. https://hub.example.com (or set AH_HOST)")
	cmd.PersistentFlags().StringVar(&usernameFlag, "username", "", "Automation hub username (or set AH_USERNAME)")
	cmd.PersistentFlags().StringVar(&passwordFlag, "password", "", "Automation hub password (or set AH_PASSWORD)")
	cmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Automation hub API token (or set AH_TOKEN)")
	cmd.PersistentFlags().BoolVar(&insecureFlag, "insecure", false, "Skip TLS certificate verification")
}
