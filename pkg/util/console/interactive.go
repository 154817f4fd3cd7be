package console

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

type Interactive struct {
	Prompt   string
	Default  string
	Required bool
}

func (i Interactive) Read() (string, error) {
	parens := ""
	if i.Required {
		parens = " (required)"
	} else if i.Default != "" {
		parens = " (default: " + i.Default + ")"
	}

	for {
		fmt.Printf("%s%s: ", i.Prompt, parens)
		reader := bufio.NewReader(os.Stdin)
		text, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text == "" && i.Default != "" {
			text = i.Default
		}
		if i.Required && text == "" {
			Warn("Please enter a value")
			continue
		}
		return text, nil
	}
}

// ReadPassword prompts for a secret without echoing it back.
func ReadPassword(prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}

// IsTerminal returns true if a user is interacting with us directly
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
