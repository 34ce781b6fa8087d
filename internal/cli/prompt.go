package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// errInputClosed aborts the interactive session when the input ends early.
var errInputClosed = errors.New("input closed before all answers were given")

// maxAttempts bounds how often one question is repeated after bad input.
const maxAttempts = 3

// Prompter wraps an input scanner and output writer for interactive prompts.
// Inject a custom reader/writer for tests.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter creates a Prompter over r and w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(r),
		out:     w,
	}
}

// String prompts for a string value. Returns defaultVal on empty input.
func (p *Prompter) String(prompt, defaultVal string) (string, error) {
	if defaultVal != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	input := strings.TrimSpace(p.scanner.Text())
	if input == "" {
		return defaultVal, nil
	}
	return input, nil
}

// Parsed asks until parse accepts the answer. With optional set, an empty
// answer returns ok == false instead of asking again.
func Parsed[T any](p *Prompter, prompt, defaultVal string, optional bool, parse func(string) (T, error)) (v T, ok bool, err error) {
	for attempt := 1; ; attempt++ {
		input, err := p.String(prompt, defaultVal)
		if err != nil {
			return v, false, err
		}
		if input == "" {
			if optional {
				return v, false, nil
			}
			fmt.Fprintln(p.out, "  A value is required.")
		} else {
			v, err = parse(input)
			if err == nil {
				return v, true, nil
			}
			fmt.Fprintf(p.out, "  Invalid input: %v\n", err)
		}
		if attempt == maxAttempts {
			return v, false, fmt.Errorf("%s: no valid answer after %d attempts", prompt, maxAttempts)
		}
	}
}
