// Package prompt asks the user for values the command line did not supply.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// ErrEmpty is returned when the user enters nothing.
var ErrEmpty = errors.New("value is required")

// Prompter resolves missing values interactively unless NonInteractive is set.
type Prompter struct {
	NonInteractive bool
}

// Text returns value when set, otherwise asks for it.
func (p Prompter) Text(value, label string) (string, error) {
	return p.ask(value, label, false)
}

// Secret is Text with the input masked.
func (p Prompter) Secret(value, label string) (string, error) {
	return p.ask(value, label, true)
}

func (p Prompter) ask(value, label string, masked bool) (string, error) {
	if strings.TrimSpace(value) != "" {
		return value, nil
	}
	if p.NonInteractive {
		return "", fmt.Errorf("%s is required in non-interactive mode", strings.ToLower(label))
	}

	input := pterm.DefaultInteractiveTextInput
	if masked {
		input = *input.WithMask("*")
	}
	answer, err := input.Show(label)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), ErrEmpty)
	}
	return answer, nil
}

// ReadLine reads a single line from r, for --password-stdin style flags.
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", ErrEmpty
	}
	return line, nil
}
