// Package prompt asks the operator questions on the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type Confirmer interface {
	Confirm(message string) (bool, error)
}

// Terminal reads answers line by line from In and writes questions to Out.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Confirm returns true only when the operator answers "yes".
func (t *Terminal) Confirm(message string) (bool, error) {
	answer, err := t.ask(fmt.Sprintf("%s (yes/no): ", message))
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "yes"), nil
}

// Value asks for a required value and repeats the question until a non-empty
// answer is given.
func (t *Terminal) Value(label string) (string, error) {
	for {
		answer, err := t.ask(fmt.Sprintf("%s: ", label))
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
	}
}

func (t *Terminal) ask(question string) (string, error) {
	if _, err := fmt.Fprint(t.out, question); err != nil {
		return "", errors.Wrap(err, "Failed to write prompt")
	}
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errors.Wrap(err, "Failed to read answer")
	}
	return strings.TrimSpace(line), nil
}
