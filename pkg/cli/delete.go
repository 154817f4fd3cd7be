package cli

import (
	"github.com/spf13/cobra"

	"github.com/ansible-community/ahctl/pkg/ee"
)

func newImageDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name[:tag]>",
		Short: "Delete an execution environment image and all its tags",
		Long: `Delete an execution environment image and all its tags.

The image is identified by its repository name and a tag (default "latest").
Deleting an image that does not exist is not an error and reports no change.`,
		RunE:    deleteImage,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"rm"},
	}

	addCheckFlag(cmd)

	return cmd
}

func deleteImage(cmd *cobra.Command, args []string) error {
	checkMode, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}

	applier, err := newApplier(checkMode)
	if err != nil {
		return err
	}

	result, err := applier.Apply(cmd.Context(), ee.Spec{
		Name:  args[0],
		State: ee.StateAbsent,
	})
	if err != nil {
		return err
	}
	return printResult(result)
}
