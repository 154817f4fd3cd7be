// Package ee implements tag management for execution-environment images:
// name parsing, tag-set reconciliation, and the apply flow that drives the
// hub's Pulp and UI APIs.
package ee

import (
	"fmt"
	"strings"
)

// Ref identifies an execution-environment image by repository name and tag.
type Ref struct {
	Repository string
	Tag        string
}

// ParseRef splits an image name on the last colon. The tag defaults to
// "latest" when the name carries none.
func ParseRef(name string) (Ref, error) {
	repository, tag := name, "latest"
	if i := strings.LastIndex(name, ":"); i >= 0 {
		repository, tag = name[:i], name[i+1:]
	}
	if repository == "" {
		return Ref{}, fmt.Errorf("Invalid image name %q: the repository name is empty", name)
	}
	if tag == "" {
		return Ref{}, fmt.Errorf("Invalid image name %q: the tag after the colon is empty", name)
	}
	return Ref{Repository: repository, Tag: tag}, nil
}

func (r Ref) String() string {
	return r.Repository + ":" + r.Tag
}
