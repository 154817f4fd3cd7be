package cli

import (
	"github.com/spf13/cobra"

	"github.com/ansible-community/ahctl/pkg/ee"
)

func newImageTagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag <name[:tag]> [tag...]",
		Short: "Reconcile the tags of an execution environment image",
		Long: `Reconcile the tags of an execution environment image.

The image is identified by its repository name and a tag (default "latest").
By default the given tags are added to the image. With --append=false the
image's tags are set to exactly the given list and every other tag is
removed; an empty list then deletes the whole image.`,
		Example: `  ahctl image tag ee-supported-rhel8:2.0.0-15 v2 "2.0" prod
  ahctl image tag ee-supported-rhel8:2.0.0-15 --append=false prod "2.0"`,
		RunE: tagImage,
		Args: cobra.MinimumNArgs(1),
	}

	cmd.Flags().Bool("append", true, "Add the tags to the image instead of replacing its tag set")
	addCheckFlag(cmd)

	return cmd
}

func tagImage(cmd *cobra.Command, args []string) error {
	appendOnly, err := cmd.Flags().GetBool("append")
	if err != nil {
		return err
	}
	checkMode, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}

	applier, err := newApplier(checkMode)
	if err != nil {
		return err
	}

	result, err := applier.Apply(cmd.Context(), ee.Spec{
		Name:   args[0],
		Tags:   args[1:],
		Append: appendOnly,
		State:  ee.StatePresent,
	})
	if err != nil {
		return err
	}
	return printResult(result)
}
