package scan

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/netgrep/netgrep/lib/format"
	"github.com/netgrep/netgrep/lib/netmatch"
)

func newTestScanner(t *testing.T, out *bytes.Buffer, targets ...string) *Scanner {
	t.Helper()
	printer, err := format.NewPrinter(out, "", false)
	if err != nil {
		t.Fatalf("NewPrinter() error = %v", err)
	}
	v4, v6 := netmatch.BuildTargetSets(targets)
	return NewScanner(v4, v6, printer)
}

func TestScan(t *testing.T) {
	input := strings.Join([]string{
		"boot sequence started",
		"accept from 10.0.0.5 port 22",
		"drop   10.9.0.1  bad host",
		"iface 192.168.1.1 255.255.255.0 up",
		"",
		"ping6 2001:db8::1 ok",
	}, "\n")

	var out bytes.Buffer
	s := newTestScanner(t, &out, "10.0.0.0/24", "192.168.1.0/24", "2001:db8::/32")

	if err := s.Scan("boot.log", strings.NewReader(input)); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := strings.Join([]string{
		"boot.log:2:accept from 10.0.0.5 port 22",
		"boot.log:4:iface 192.168.1.1 255.255.255.0 up",
		"boot.log:6:ping6 2001:db8::1 ok",
	}, "\n") + "\n"
	if out.String() != want {
		t.Errorf("Scan() output =\n%q\nwant\n%q", out.String(), want)
	}
}

func TestScan_NoMatchesNoOutput(t *testing.T) {
	var out bytes.Buffer
	s := newTestScanner(t, &out, "10.0.0.0/24")

	if err := s.Scan("x", strings.NewReader("nothing here\n172.16.0.1 either\n")); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestScan_OversizedLine(t *testing.T) {
	var out bytes.Buffer
	s := newTestScanner(t, &out, "10.0.0.0/24")

	long := strings.Repeat("x", maxLineLength+1)
	if err := s.Scan("big.log", strings.NewReader(long)); err == nil {
		t.Fatal("expected an error for a line exceeding the buffer limit")
	}
}

func TestScanFiles_OversizedLineSkipsRestOfFile(t *testing.T) {
	dir := t.TempDir()
	huge := filepath.Join(dir, "huge.log")
	content := "10.0.0.1 before the long line\n" +
		strings.Repeat("x", maxLineLength+1) + "\n" +
		"10.0.0.2 after\n"
	if err := os.WriteFile(huge, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	next := filepath.Join(dir, "next.log")
	if err := os.WriteFile(next, []byte("10.0.0.3 fine\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	var out bytes.Buffer
	s := newTestScanner(t, &out, "10.0.0.0/24")

	if err := s.ScanFiles([]string{huge, next}); err != nil {
		t.Fatalf("ScanFiles() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, huge+":1:10.0.0.1 before the long line") {
		t.Errorf("missing match before the oversized line in %q", got)
	}
	if strings.Contains(got, "10.0.0.2") {
		t.Errorf("unexpected match after the oversized line in %q", got)
	}
	if !strings.Contains(got, next+":1:10.0.0.3 fine") {
		t.Errorf("missing match from the following file in %q", got)
	}
}

func TestScanFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")
	if err := os.WriteFile(first, []byte("10.0.0.1 here\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.WriteFile(second, []byte("and 10.0.0.2\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	var out bytes.Buffer
	s := newTestScanner(t, &out, "10.0.0.0/24")

	missing := filepath.Join(dir, "missing.log")
	if err := s.ScanFiles([]string{first, missing, second}); err != nil {
		t.Fatalf("ScanFiles() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, first+":1:10.0.0.1 here") {
		t.Errorf("missing match from first file in %q", got)
	}
	if !strings.Contains(got, second+":1:and 10.0.0.2") {
		t.Errorf("missing match from second file in %q", got)
	}
	if strings.Contains(got, "missing.log") {
		t.Errorf("unexpected output for unopenable file in %q", got)
	}
}
