package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ansible-community/ahctl/pkg/ee"
	"github.com/ansible-community/ahctl/pkg/util/console"
)

func newImageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "image",
		Aliases: []string{"ee"},
		Short:   "Manage execution environment images",
	}

	cmd.AddCommand(
		newImageTagCommand(),
		newImageDeleteCommand(),
		newImageShowCommand(),
	)

	return cmd
}

// printResult writes the result record to stdout as JSON, so the output can
// be consumed by scripts and playbooks.
func printResult(result *ee.Result) error {
	encoded, err := json.Marshal(result)
	if err != nil {
		return err
	}
	console.Output(string(encoded))
	return nil
}

func addCheckFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("check", false, "Report what would change without changing anything")
}
