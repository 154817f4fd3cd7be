package api

import (
	"fmt"

	"github.com/ansible-community/ahctl/pkg/global"
)

const UserAgentHeader = "User-Agent"

func UserAgent() string {
	return fmt.Sprintf("ahctl/%s", global.Version)
}
