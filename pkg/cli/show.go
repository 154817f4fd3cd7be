package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ansible-community/ahctl/pkg/ee"
	"github.com/ansible-community/ahctl/pkg/pulp"
	"github.com/ansible-community/ahctl/pkg/ui"
	"github.com/ansible-community/ahctl/pkg/util/console"
)

func newImageShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name[:tag]>",
		Short: "Show the digest and tags of an execution environment image",
		RunE:  showImage,
		Args:  cobra.ExactArgs(1),
	}
}

func showImage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ref, err := ee.ParseRef(args[0])
	if err != nil {
		return err
	}

	apiClient, err := newAPIClient()
	if err != nil {
		return err
	}
	if err := apiClient.Authenticate(ctx); err != nil {
		return err
	}
	serverVersion, err := apiClient.EnsureMinimumVersion(ctx)
	if err != nil {
		return err
	}

	repo, err := pulp.NewClient(apiClient).FindRepository(ctx, ref.Repository)
	if err != nil {
		return err
	}
	if repo == nil {
		return fmt.Errorf("The %s repository does not exist", ref.Repository)
	}

	image, err := ui.NewClient(apiClient).GetTag(ctx, ref.Repository, ref.Tag, serverVersion)
	if err != nil {
		return err
	}
	if image == nil {
		return fmt.Errorf("The image tag %s for the %s repository does not exist", ref.Tag, ref.Repository)
	}

	encoded, err := json.Marshal(struct {
		Name   string   `json:"name"`
		Tag    string   `json:"tag"`
		Digest string   `json:"digest"`
		Tags   []string `json:"tags"`
	}{
		Name:   ref.Repository,
		Tag:    ref.Tag,
		Digest: image.Digest,
		Tags:   image.Tags,
	})
	if err != nil {
		return err
	}
	console.Output(string(encoded))
	return nil
}
