package ee

import (
	"context"
	"fmt"

	goversion "github.com/hashicorp/go-version"

	"github.com/ansible-community/ahctl/pkg/pulp"
	"github.com/ansible-community/ahctl/pkg/ui"
	"github.com/ansible-community/ahctl/pkg/util/console"
)

type State string

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// Spec is the desired state of an image, the typed equivalent of the
// tool's command-line parameters.
type Spec struct {
	// Name is the image to manage, as repository[:tag]. The tag defaults
	// to "latest".
	Name string
	// Tags is the requested tag set. Only used when State is present.
	Tags []string
	// Append adds Tags to the image without touching existing tags; when
	// false the image's tags are replaced with exactly Tags.
	Append bool
	// State is present or absent; empty defaults to present.
	State State
}

// Result is the machine-readable outcome of an Apply.
type Result struct {
	Name    string `json:"name"`
	Tag     string `json:"tag"`
	Type    string `json:"type"`
	Changed bool   `json:"changed"`
}

// Hub is the authentication and version surface of the hub API client.
type Hub interface {
	Authenticate(ctx context.Context) error
	EnsureMinimumVersion(ctx context.Context) (*goversion.Version, error)
}

// RepositoryStore is the Pulp side: distribution lookup and tag mutations.
type RepositoryStore interface {
	FindRepository(ctx context.Context, name string) (*pulp.Repository, error)
	DeleteImage(ctx context.Context, repo *pulp.Repository, digest string) error
	CreateTag(ctx context.Context, repo *pulp.Repository, digest string, tag string) error
	DeleteTag(ctx context.Context, repo *pulp.Repository, tag string) error
}

// TagResolver is the UI API side: resolving a name and tag into a digest and
// the image's current tag set.
type TagResolver interface {
	GetTag(ctx context.Context, name string, tag string, serverVersion *goversion.Version) (*ui.Image, error)
}

// Applier reconciles one image per invocation. With CheckMode set it reports
// what would change without performing any mutation.
type Applier struct {
	Hub       Hub
	Repos     RepositoryStore
	Images    TagResolver
	CheckMode bool
}

// Apply drives the full flow: authenticate, gate on the server version,
// resolve the image, then delete it or reconcile its tags.
//
// Tag mutations are individual API calls with no transaction around them; a
// failure midway aborts the invocation and leaves the already-applied tags in
// place.
func (a *Applier) Apply(ctx context.Context, spec Spec) (*Result, error) {
	ref, err := ParseRef(spec.Name)
	if err != nil {
		return nil, err
	}

	state := spec.State
	if state == "" {
		state = StatePresent
	}
	if state != StatePresent && state != StateAbsent {
		return nil, fmt.Errorf("Invalid state %q: must be %q or %q", spec.State, StatePresent, StateAbsent)
	}

	result := &Result{Name: ref.Repository, Tag: ref.Tag, Type: "image"}

	if err := a.Hub.Authenticate(ctx); err != nil {
		return nil, err
	}

	// Only hub 4.3.2 and later expose the execution-environment APIs.
	// Checked up front so unsupported servers are never mutated.
	serverVersion, err := a.Hub.EnsureMinimumVersion(ctx)
	if err != nil {
		return nil, err
	}

	repo, err := a.Repos.FindRepository(ctx, ref.Repository)
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, fmt.Errorf("The %s repository does not exist", ref.Repository)
	}

	image, err := a.Images.GetTag(ctx, ref.Repository, ref.Tag, serverVersion)
	if err != nil {
		return nil, err
	}

	if state == StateAbsent {
		if image == nil {
			return result, nil
		}
		if err := a.deleteImage(ctx, repo, image.Digest); err != nil {
			return nil, err
		}
		result.Changed = true
		return result, nil
	}

	if image == nil {
		return nil, fmt.Errorf("The image tag %s for the %s repository does not exist", ref.Tag, ref.Repository)
	}

	// An empty tag list is a no-op in append mode. In replace mode it
	// means "no tags at all", which deletes the whole image.
	if len(spec.Tags) == 0 {
		if spec.Append {
			return result, nil
		}
		if err := a.deleteImage(ctx, repo, image.Digest); err != nil {
			return nil, err
		}
		result.Changed = true
		return result, nil
	}

	toAdd, toRemove, changed := Reconcile(NewTagSet(image.Tags), NewTagSet(spec.Tags), spec.Append)

	for _, tag := range toAdd {
		if a.CheckMode {
			console.Debugf("Check mode: would add the tag %s to %s", tag, ref.Repository)
			continue
		}
		if err := a.Repos.CreateTag(ctx, repo, image.Digest, tag); err != nil {
			return nil, err
		}
	}
	for _, tag := range toRemove {
		if a.CheckMode {
			console.Debugf("Check mode: would remove the tag %s from %s", tag, ref.Repository)
			continue
		}
		if err := a.Repos.DeleteTag(ctx, repo, tag); err != nil {
			return nil, err
		}
	}

	result.Changed = changed
	return result, nil
}

func (a *Applier) deleteImage(ctx context.Context, repo *pulp.Repository, digest string) error {
	if a.CheckMode {
		console.Debugf("Check mode: would delete the image %s from %s", digest, repo.Name)
		return nil
	}
	return a.Repos.DeleteImage(ctx, repo, digest)
}
