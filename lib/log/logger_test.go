package log

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// Helper to capture output from os.Stdout and os.Stderr
func captureOutput(f func()) (stdout, stderr string) {
	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()

	os.Stdout = wOut
	os.Stderr = wErr

	outCh := make(chan string)
	errCh := make(chan string)

	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, rOut)
		outCh <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, rErr)
		errCh <- buf.String()
	}()

	f()

	wOut.Close()
	wErr.Close()

	stdout = <-outCh
	stderr = <-errCh

	os.Stdout = oldStdout
	os.Stderr = oldStderr

	return stdout, stderr
}

func TestSetVerbose(t *testing.T) {
	originalVerbose := verbose
	defer func() { verbose = originalVerbose }()

	SetVerbose(true)
	if !verbose {
		t.Error("Expected verbose to be true")
	}

	SetVerbose(false)
	if verbose {
		t.Error("Expected verbose to be false")
	}
}

func TestDebugf_VerboseOff(t *testing.T) {
	originalVerbose := verbose
	defer func() { verbose = originalVerbose }()

	SetVerbose(false)

	stdout, stderr := captureOutput(func() {
		Debugf("test debug message")
	})

	if stdout != "" {
		t.Errorf("Expected no stdout output when verbose is off, got: %s", stdout)
	}

	if stderr != "" {
		t.Errorf("Expected no stderr output when verbose is off, got: %s", stderr)
	}
}

func TestStdoutStaysClean(t *testing.T) {
	originalVerbose := verbose
	defer func() { verbose = originalVerbose }()

	SetVerbose(true)

	stdout, _ := captureOutput(func() {
		Debugf("debug")
		Infof("info")
		Warnf("warn")
		Errorf("error")
	})

	if stdout != "" {
		t.Errorf("Expected no stdout output for any log level, got: %s", stdout)
	}
}

func TestLogMessage_FormattingWithArgs(t *testing.T) {
	_, stderr := captureOutput(func() {
		Infof("test message with %s and %d", "string", 42)
	})

	if !strings.Contains(stderr, "test message with string and 42") {
		t.Errorf("Expected formatted message, got: %s", stderr)
	}
}

func TestLogPrefixes(t *testing.T) {
	originalVerbose := verbose
	defer func() { verbose = originalVerbose }()

	SetVerbose(true)

	tests := []struct {
		name     string
		logFunc  func(string, ...interface{})
		expected string
	}{
		{"Debug", Debugf, "[DBG]"},
		{"Info", Infof, "[INF]"},
		{"Warn", Warnf, "[WRN]"},
		{"Error", Errorf, "[ERR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr := captureOutput(func() {
				tt.logFunc("test message")
			})

			if !strings.Contains(stderr, tt.expected) {
				t.Errorf("Expected prefix %s in stderr, got: %s", tt.expected, stderr)
			}
		})
	}
}

func TestDisableLogs(t *testing.T) {
	defer func() { disableLogs = false }()

	if IsDisabled() {
		t.Fatal("logging should start enabled")
	}

	DisableLogs()
	if !IsDisabled() {
		t.Error("IsDisabled() = false after DisableLogs()")
	}

	_, stderr := captureOutput(func() {
		Infof("suppressed")
		Warnf("suppressed")
		Errorf("suppressed")
	})
	if stderr != "" {
		t.Errorf("expected no output while logging is disabled, got %q", stderr)
	}
}
