package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Prompter asks for values on out and reads the answers line by line from in.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// ReadLine prints prompt and returns the next line. It returns io.EOF once the
// input is exhausted.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}

// Ask re-prompts until the answer parses as kind.
func (p *Prompter) Ask(prompt string, kind InputKind) (Input, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return Input{}, err
		}

		input, err := ParseInput(kind, line)
		if err == nil {
			return input, nil
		}

		var formatErr *InputFormatError
		if !errors.As(err, &formatErr) {
			return Input{}, err
		}
		fmt.Fprintln(p.out, formatErr.Error())
	}
}
