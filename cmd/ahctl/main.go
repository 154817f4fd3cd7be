package main

import (
	"context"

	"github.com/ansible-community/ahctl/pkg/cli"
	"github.com/ansible-community/ahctl/pkg/util/console"
)

func main() {
	cmd, err := cli.NewRootCommand()
	if err != nil {
		console.Fatalf("%s", err)
	}

	if err = cmd.ExecuteContext(context.Background()); err != nil {
		console.Fatalf("%s", err)
	}
}
