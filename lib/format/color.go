package format

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// ANSI sequences used for match highlighting: cyan separators, magenta
// file names, green line numbers, bold red matched tokens.
const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// Mode controls when match output is colorized.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// Enabled reports whether color should be applied to output going to w.
// ModeAuto colorizes only when w is a terminal, so piped output stays
// machine-readable.
func (m Mode) Enabled(w io.Writer) bool {
	switch m {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		return isTerminal(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	_, err := unix.IoctlGetTermios(int(f.Fd()), unix.TCGETS)
	return err == nil
}
