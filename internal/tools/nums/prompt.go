package nums

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks yes/no questions.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// NewPrompter returns a prompter that reads a single key press when in is the
// terminal on stdin, and whole lines otherwise. yes is the answer, matched
// case-insensitively on its first letter, that confirms.
func NewPrompter(in io.Reader, out io.Writer, yes string) Prompter {
	if f, ok := in.(*os.File); ok && f == os.Stdin {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			return &keyPrompter{file: f, fd: fd, out: out, yes: yes}
		}
	}
	return &linePrompter{in: bufio.NewReader(in), out: out, yes: yes}
}

func isYes(answer, yes string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" || yes == "" {
		return false
	}
	return strings.EqualFold(answer[:1], yes[:1])
}

type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
	yes string
}

// Confirm prints question and reads one line. End of input counts as no.
func (p *linePrompter) Confirm(question string) (bool, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.out)
	}
	return isYes(line, p.yes), nil
}

type keyPrompter struct {
	file *os.File
	fd   int
	out  io.Writer
	yes  string
}

// Confirm prints question and waits for one key without requiring enter.
func (p *keyPrompter) Confirm(question string) (bool, error) {
	fmt.Fprint(p.out, question)
	state, err := term.MakeRaw(p.fd)
	if err != nil {
		return false, fmt.Errorf("enter raw mode: %w", err)
	}
	var buf [1]byte
	_, readErr := p.file.Read(buf[:])
	if err := term.Restore(p.fd, state); err != nil {
		return false, fmt.Errorf("restore terminal: %w", err)
	}
	if readErr != nil {
		fmt.Fprintln(p.out)
		if errors.Is(readErr, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("read key: %w", readErr)
	}
	// Ctrl-C and other control keys answer no.
	if buf[0] < ' ' {
		fmt.Fprintln(p.out)
		return false, nil
	}
	fmt.Fprintf(p.out, "%c\n", buf[0])
	return isYes(string(buf[:]), p.yes), nil
}
