package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ogulcanaydogan/budget-intake/pkg/model"
)

// ErrorMessage is printed after every input that is neither a number nor
// the sentinel.
const ErrorMessage = "Not a number! Try again."

// DefaultSentinel ends a list of entries.
const DefaultSentinel = "done"

// ErrInputClosed is returned when the input stream ends before a valid
// entry was read.
var ErrInputClosed = errors.New("input closed before a value was entered")

// Options configures a Prompter.
type Options struct {
	Sentinel string
	Kind     model.NumberKind
}

// Prompter reads validated numeric entries from a line-oriented stream.
type Prompter struct {
	in       *bufio.Reader
	out      io.Writer
	sentinel string
	kind     model.NumberKind
	errStyle lipgloss.Style
}

// New creates a Prompter reading from in and writing prompts to out.
// Empty options fall back to DefaultSentinel and real numbers.
func New(in io.Reader, out io.Writer, opts Options) *Prompter {
	if opts.Sentinel == "" {
		opts.Sentinel = DefaultSentinel
	}
	if opts.Kind == "" {
		opts.Kind = model.KindReal
	}

	renderer := lipgloss.NewRenderer(out)
	return &Prompter{
		in:       bufio.NewReader(in),
		out:      out,
		sentinel: opts.Sentinel,
		kind:     opts.Kind,
		errStyle: renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// Sentinel returns the token that ends input.
func (p *Prompter) Sentinel() string { return p.sentinel }

// Kind returns the configured number kind.
func (p *Prompter) Kind() model.NumberKind { return p.kind }

// Number shows message and blocks until the user types a valid number or
// the sentinel. Invalid input is reported and the prompt repeated with no
// retry limit. A valid entry is returned exactly as typed.
func (p *Prompter) Number(message string) (model.Entry, error) {
	for {
		if _, err := io.WriteString(p.out, message); err != nil {
			return model.Entry{}, fmt.Errorf("write prompt: %w", err)
		}

		line, err := p.readLine()
		if err != nil {
			return model.Entry{}, err
		}

		if line == p.sentinel {
			return model.Done, nil
		}
		if ValidNumber(p.kind, line) {
			return model.Value(line), nil
		}

		if _, err := fmt.Fprintln(p.out, p.errStyle.Render(ErrorMessage)); err != nil {
			return model.Entry{}, fmt.Errorf("write error message: %w", err)
		}
	}
}

// readLine returns the next line without its terminator. A final line with
// no newline is still returned; ErrInputClosed only follows once nothing is
// left.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrInputClosed
			}
		} else {
			return "", fmt.Errorf("read input: %w", err)
		}
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
