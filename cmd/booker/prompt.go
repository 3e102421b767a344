package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// backInput at any prompt steps the wizard back.
const backInput = "<"

var errBack = errors.New("back")

// prompter reads one answer per line from in and writes questions to out.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// ask returns the trimmed answer, or def when the line is empty.
// io.EOF is returned when input runs out.
func (p *prompter) ask(label, def string) (string, error) {
	if def != "" {
		p.printf("%s [%s]: ", label, def)
	} else {
		p.printf("%s: ", label)
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	answer := strings.TrimSpace(p.in.Text())
	switch answer {
	case backInput:
		return "", errBack
	case "":
		return def, nil
	}
	return answer, nil
}

// choose lists options numbered from 1 and returns the picked index.
func (p *prompter) choose(label string, options []string) (int, error) {
	for i, o := range options {
		p.printf("  %d) %s\n", i+1, o)
	}
	for {
		answer, err := p.ask(label, "")
		if err != nil {
			return -1, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		p.printf("Please enter a number between 1 and %d\n", len(options))
	}
}

// confirm is true for y or yes.
func (p *prompter) confirm(label string) (bool, error) {
	answer, err := p.ask(label+" [y/N]", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
