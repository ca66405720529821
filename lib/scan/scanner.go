package scan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/netgrep/netgrep/lib/format"
	"github.com/netgrep/netgrep/lib/log"
	"github.com/netgrep/netgrep/lib/netmatch"
	"github.com/netgrep/netgrep/lib/utils"
)

// StdinName is the file name reported for matches read from stdin.
const StdinName = "(stdin)"

// Log lines regularly exceed bufio.Scanner's default 64K token limit.
const maxLineLength = 1024 * 1024

// Scanner matches the lines of target files against a fixed pair of
// canonical target network sets. The sets are read-only after construction
// and are reused across all files and lines; nothing else survives from
// one line to the next.
type Scanner struct {
	v4, v6  netmatch.TargetSet
	printer *format.Printer
}

func NewScanner(v4, v6 netmatch.TargetSet, printer *format.Printer) *Scanner {
	return &Scanner{v4: v4, v6: v6, printer: printer}
}

// ScanFiles processes every target path in order, one file fully before
// the next. A path of "-" means stdin, as does an empty path list.
// Unopenable and unreadable files are reported and skipped; they do not
// abort the run.
func (s *Scanner) ScanFiles(paths []string) error {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	for _, path := range paths {
		if path == "-" {
			s.scanAndReport(StdinName, os.Stdin)
			continue
		}

		file, err := os.Open(path)
		if err != nil {
			log.Warnf("Could not open file '%s', skipping", path)
			continue
		}
		s.scanAndReport(path, file)
		utils.CloseOrPanic(file)
	}

	return nil
}

// scanAndReport downgrades a mid-file read failure (an oversized line, an
// I/O error) to a warning so the remaining files are still scanned.
// Matches printed before the failure stand.
func (s *Scanner) scanAndReport(name string, r io.Reader) {
	if err := s.Scan(name, r); err != nil {
		log.Warnf("%v, skipping rest of file", err)
	}
}

// Scan runs the matcher over r line by line and reports every line with at
// least one matched token under the given name. Line numbers are 1-based.
func (s *Scanner) Scan(name string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		tokens := strings.Fields(scanner.Text())
		matched := netmatch.Match(tokens, s.v4, s.v6)
		if len(matched) == 0 {
			continue
		}
		if err := s.printer.PrintMatch(name, lineNumber, tokens, matched); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read '%s': %v", name, err)
	}

	return nil
}
