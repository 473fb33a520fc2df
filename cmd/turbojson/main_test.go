package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/turbojson/turbojson"
	"github.com/turbojson/turbojson/tjerr"
)

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestWriteClassifiedErrorDecodeWrapped(t *testing.T) {
	inner := tjerr.NewDecodeError(tjerr.InvalidUTF8, []byte(`{"a":1}`), 3, "bad byte")
	err := fmt.Errorf("outer: %w", inner)
	var stderr bytes.Buffer
	code := writeClassifiedError(&stderr, err)
	if code != tjerr.InvalidUTF8.ExitCode() {
		t.Fatalf("expected exit %d, got %d", tjerr.InvalidUTF8.ExitCode(), code)
	}
}

func TestWriteClassifiedErrorEncodeWrapped(t *testing.T) {
	inner := tjerr.NewEncodeError(tjerr.UnsupportedType, "no fallback")
	err := fmt.Errorf("outer: %w", inner)
	var stderr bytes.Buffer
	code := writeClassifiedError(&stderr, err)
	if code != tjerr.UnsupportedType.ExitCode() {
		t.Fatalf("expected exit %d, got %d", tjerr.UnsupportedType.ExitCode(), code)
	}
}

func TestWriteClassifiedErrorFallback(t *testing.T) {
	err := fmt.Errorf("unclassified failure")
	var stderr bytes.Buffer
	code := writeClassifiedError(&stderr, err)
	if code != tjerr.InternalError.ExitCode() {
		t.Fatalf("expected exit %d, got %d", tjerr.InternalError.ExitCode(), code)
	}
}

func TestRunNoCommandExitCode(t *testing.T) {
	var stderr bytes.Buffer
	code := run(nil, strings.NewReader(""), &bytes.Buffer{}, &stderr)
	if code != tjerr.CLIUsage.ExitCode() {
		t.Fatalf("expected exit %d, got %d", tjerr.CLIUsage.ExitCode(), code)
	}
	if !strings.Contains(stderr.String(), "usage:") {
		t.Fatalf("expected usage output, got %q", stderr.String())
	}
}

func TestRunTopLevelHelpExitZero(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := run([]string{"--help"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "usage: turbojson") {
		t.Fatalf("expected help output, got %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected empty stderr, got %q", stderr.String())
	}

	stdout.Reset()
	code = run([]string{"-h"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "usage: turbojson") {
		t.Fatalf("expected help output, got %q", stdout.String())
	}
}

func TestRunTopLevelVersionExitZero(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"--version"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(strings.TrimSpace(stdout.String()), "turbojson v") {
		t.Fatalf("expected version output, got %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected empty stderr, got %q", stderr.String())
	}
}

func TestRunUnknownCommandExitCode(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"bogus"}, strings.NewReader(""), &bytes.Buffer{}, &stderr)
	if code != tjerr.CLIUsage.ExitCode() {
		t.Fatalf("expected exit %d, got %d", tjerr.CLIUsage.ExitCode(), code)
	}
	if !strings.Contains(stderr.String(), "unknown command") {
		t.Fatalf("expected unknown command error, got %q", stderr.String())
	}
}

func TestRunEncodeRoundTrip(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"encode", "-"}, strings.NewReader(`{"b":2,"a":1}`), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%q", code, stderr.String())
	}
	if stdout.String() != `{"b":2,"a":1}` {
		t.Fatalf("unexpected encode output: %q", stdout.String())
	}
}

func TestRunEncodeSortKeysOption(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"encode", "--option=SORT_KEYS", "-"}, strings.NewReader(`{"b":2,"a":1}`), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%q", code, stderr.String())
	}
	if stdout.String() != `{"a":1,"b":2}` {
		t.Fatalf("unexpected sorted encode output: %q", stdout.String())
	}
}

func TestRunEncodeUnknownOption(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"encode", "--option=NOT_A_REAL_OPTION", "-"}, strings.NewReader(`{}`), &bytes.Buffer{}, &stderr)
	if code != tjerr.CLIUsage.ExitCode() {
		t.Fatalf("expected exit %d, got %d", tjerr.CLIUsage.ExitCode(), code)
	}
	if !strings.Contains(stderr.String(), "unknown option") {
		t.Fatalf("expected unknown option error, got %q", stderr.String())
	}
}

func TestRunDecodeOK(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"decode", "-"}, strings.NewReader(`{"a":1}`), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%q", code, stderr.String())
	}
	if strings.TrimSpace(stdout.String()) != "ok" {
		t.Fatalf("expected ok, got %q", stdout.String())
	}
}

func TestRunDecodeQuietSuppressesOutput(t *testing.T) {
	var stdout bytes.Buffer
	code := run([]string{"decode", "--quiet", "-"}, strings.NewReader(`{"a":1}`), &stdout, &bytes.Buffer{})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected empty stdout under --quiet, got %q", stdout.String())
	}
}

func TestRunDecodeMalformedInput(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"decode", "-"}, strings.NewReader(`{`), &bytes.Buffer{}, &stderr)
	if code == 0 {
		t.Fatal("expected non-zero exit for malformed input")
	}
	if !strings.Contains(stderr.String(), "error:") {
		t.Fatalf("expected error output, got %q", stderr.String())
	}
}

func TestRunEncodeWriteFailure(t *testing.T) {
	var stderr bytes.Buffer
	code := run(
		[]string{"encode", "-"},
		strings.NewReader(`{"a":1}`),
		failingWriter{},
		&stderr,
	)
	if code != tjerr.InternalIO.ExitCode() {
		t.Fatalf("expected exit %d, got %d stderr=%q", tjerr.InternalIO.ExitCode(), code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "writing output") {
		t.Fatalf("expected write failure text, got %q", stderr.String())
	}
}

func TestParseFlagsUnknownFlag(t *testing.T) {
	_, _, err := parseFlags([]string{"--nope"})
	if err == nil {
		t.Fatal("expected parseFlags error for unknown flag")
	}
}

func TestParseFlagsOptionList(t *testing.T) {
	fl, positional, err := parseFlags([]string{"--option=SORT_KEYS,UTC_Z", "-"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fl.option != turbojson.SortKeys|turbojson.UTCZ {
		t.Fatalf("expected SORT_KEYS|UTC_Z, got %v", fl.option)
	}
	if len(positional) != 1 || positional[0] != "-" {
		t.Fatalf("unexpected positional args: %v", positional)
	}
}

func TestParseFlagsDoubleDashStopsFlagParsing(t *testing.T) {
	_, positional, err := parseFlags([]string{"--", "--quiet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(positional) != 1 || positional[0] != "--quiet" {
		t.Fatalf("expected literal --quiet positional arg, got %v", positional)
	}
}

func TestEnsureSingleInputRejectsMultiple(t *testing.T) {
	var stderr bytes.Buffer
	code, rejected := ensureSingleInput([]string{"a.json", "b.json"}, &stderr)
	if !rejected {
		t.Fatal("expected multiple inputs to be rejected")
	}
	if code != tjerr.CLIUsage.ExitCode() {
		t.Fatalf("expected exit %d, got %d", tjerr.CLIUsage.ExitCode(), code)
	}
}

func TestEnsureSingleInputAllowsOneOrNone(t *testing.T) {
	if _, rejected := ensureSingleInput(nil, &bytes.Buffer{}); rejected {
		t.Fatal("expected no positional args to be allowed")
	}
	if _, rejected := ensureSingleInput([]string{"a.json"}, &bytes.Buffer{}); rejected {
		t.Fatal("expected a single positional arg to be allowed")
	}
}

func TestReadInputFromFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "in.json")
	if err := os.WriteFile(p, []byte(`{"a":1}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	got, err := readInput([]string{p}, strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Fatalf("unexpected file contents: %q", got)
	}
}

func TestReadInputMissingFileReturnsCLIUsage(t *testing.T) {
	_, err := readInput([]string{filepath.Join(t.TempDir(), "missing.json")}, strings.NewReader(""))
	if err == nil {
		t.Fatal("expected missing file failure")
	}
	var ee *tjerr.EncodeError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *tjerr.EncodeError, got %T", err)
	}
	if ee.Class != tjerr.CLIUsage {
		t.Fatalf("expected CLIUsage, got %s", ee.Class)
	}
}

func TestReadInputDashReadsStdin(t *testing.T) {
	got, err := readInput([]string{"-"}, strings.NewReader(`{"x":1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"x":1}` {
		t.Fatalf("unexpected stdin contents: %q", got)
	}
}
