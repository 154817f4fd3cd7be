package env

import (
	"os"
	"strconv"
)

const (
	HostEnvVarName      = "AH_HOST"
	UsernameEnvVarName  = "AH_USERNAME"
	PasswordEnvVarName  = "AH_PASSWORD"
	TokenEnvVarName     = "AH_TOKEN"
	VerifySSLEnvVarName = "AH_VERIFY_SSL"
)

func HostFromEnvironment() string {
	return os.Getenv(HostEnvVarName)
}

func UsernameFromEnvironment() string {
	return os.Getenv(UsernameEnvVarName)
}

func PasswordFromEnvironment() string {
	return os.Getenv(PasswordEnvVarName)
}

func TokenFromEnvironment() string {
	return os.Getenv(TokenEnvVarName)
}

// VerifySSLFromEnvironment returns false only when AH_VERIFY_SSL is set to an
// explicit false value. Unset or unparseable values keep verification on.
func VerifySSLFromEnvironment() bool {
	v := os.Getenv(VerifySSLEnvVarName)
	if v == "" {
		return true
	}
	verify, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return verify
}
