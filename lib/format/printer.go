package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"
)

// DefaultTemplate is the default shape of a reported match line:
// <file>:<line>:<space-joined tokens>.
const DefaultTemplate = "{file}{sep}{line}{sep}{text}"

const separator = ":"

// Printer renders lines with at least one matched token. Lines without
// matches are never printed.
type Printer struct {
	out      io.Writer
	template *fasttemplate.Template
	colorize bool
}

// NewPrinter builds a printer for the given output template. The template
// may reference the tags {file}, {line}, {sep} and {text}; an empty format
// selects DefaultTemplate.
func NewPrinter(out io.Writer, format string, colorize bool) (*Printer, error) {
	if format == "" {
		format = DefaultTemplate
	}
	tpl, err := fasttemplate.NewTemplate(format, "{", "}")
	if err != nil {
		return nil, fmt.Errorf("invalid output format '%s': %v", format, err)
	}
	return &Printer{out: out, template: tpl, colorize: colorize}, nil
}

// PrintMatch writes one matched line. matched holds the 0-based positions
// of the tokens that fell inside a target network.
func (p *Printer) PrintMatch(file string, line int, tokens []string, matched []int) error {
	_, err := io.WriteString(p.out, p.BuildLine(file, line, tokens, matched)+"\n")
	return err
}

// BuildLine combines file name, line number and tokens into one output
// line, highlighting the matched tokens when colorization is on.
func (p *Printer) BuildLine(file string, line int, tokens []string, matched []int) string {
	sep := separator
	lineNumber := strconv.Itoa(line)

	if p.colorize {
		tokens = append([]string(nil), tokens...)
		for _, i := range matched {
			if i >= 0 && i < len(tokens) {
				tokens[i] = ansiBold + ansiRed + tokens[i] + ansiReset
			}
		}
		sep = ansiCyan + sep + ansiReset
		file = ansiMagenta + file + ansiReset
		lineNumber = ansiGreen + lineNumber + ansiReset
	}

	return p.template.ExecuteString(map[string]interface{}{
		"file": file,
		"line": lineNumber,
		"sep":  sep,
		"text": strings.Join(tokens, " "),
	})
}
