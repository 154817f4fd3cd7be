package pulp

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/ansible-community/ahctl/pkg/util/console"
)

var (
	taskPollInterval = 500 * time.Millisecond
	taskPollAttempts = uint(120)
)

type task struct {
	State string `json:"state"`
	Error *struct {
		Description string `json:"description"`
	} `json:"error"`
}

func (t *task) terminal() bool {
	switch t.State {
	case "completed", "failed", "canceled", "skipped":
		return true
	}
	return false
}

// waitForTask polls a Pulp task href until it reaches a terminal state. This
// is completion-waiting on a spawned task; failed requests are not retried.
func (c *Client) waitForTask(ctx context.Context, href string) error {
	console.Debugf("Waiting for Pulp task %s", href)

	return retry.Do(
		func() error {
			t := &task{}
			if err := c.api.GetJSON(ctx, href, t); err != nil {
				return retry.Unrecoverable(err)
			}
			if !t.terminal() {
				return fmt.Errorf("Task %s is still %s", href, t.State)
			}
			if t.State != "completed" {
				reason := t.State
				if t.Error != nil && t.Error.Description != "" {
					reason = t.Error.Description
				}
				return retry.Unrecoverable(fmt.Errorf("Task %s did not complete: %s", href, reason))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(taskPollAttempts),
		retry.Delay(taskPollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}
