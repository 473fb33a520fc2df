// Command turbojson encodes and decodes JSON through the turbojson codec.
//
// Stable ABI:
//
//	turbojson encode [--option=NAME,...] [file|-]
//	turbojson decode [--quiet] [file|-]
//	turbojson --help
//	turbojson --version
//
// Exit codes: 0 (success), 2 (input/usage/codec failure), 10 (internal/IO).
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/turbojson/turbojson"
	"github.com/turbojson/turbojson/tjerr"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	if len(args) == 1 {
		switch args[0] {
		case "--help", "-h":
			_ = writeGlobalHelp(stdout)
			return 0
		case "--version":
			_ = writeVersion(stdout)
			return 0
		}
	}

	if len(args) == 0 {
		_ = writeGlobalHelp(stderr)
		return tjerr.CLIUsage.ExitCode()
	}

	switch args[0] {
	case "encode":
		return cmdEncode(args[1:], stdin, stdout, stderr)
	case "decode":
		return cmdDecode(args[1:], stdin, stdout, stderr)
	default:
		_ = writef(stderr, "unknown command: %s\n", args[0])
		_ = writeGlobalHelp(stderr)
		return tjerr.CLIUsage.ExitCode()
	}
}

type flags struct {
	quiet  bool
	help   bool
	option turbojson.Option
	corpus string
}

// optionNames maps the --option flag's comma-separated tokens to bits
// (spec §4.8). Listed in the same order as the Option bits.
var optionNames = map[string]turbojson.Option{
	"APPEND_NEWLINE":           turbojson.AppendNewline,
	"INDENT_2":                 turbojson.Indent2,
	"NAIVE_UTC":                turbojson.NaiveUTC,
	"UTC_Z":                    turbojson.UTCZ,
	"OMIT_MICROSECONDS":        turbojson.OmitMicroseconds,
	"STRICT_INTEGER":           turbojson.StrictInteger,
	"NON_STR_KEYS":             turbojson.NonStrKeys,
	"SORT_KEYS":                turbojson.SortKeys,
	"PASSTHROUGH_SUBCLASS":     turbojson.PassthroughSubclass,
	"PASSTHROUGH_DATETIME":     turbojson.PassthroughDatetime,
	"SERIALIZE_NUMERIC_ARRAYS": turbojson.SerializeNumericArrays,
}

func parseFlags(args []string) (flags, []string, error) {
	var f flags
	var positional []string
	consumeAsPositional := false
	for _, arg := range args {
		if consumeAsPositional {
			positional = append(positional, arg)
			continue
		}

		switch {
		case arg == "--quiet" || arg == "-q":
			f.quiet = true
		case arg == "--help" || arg == "-h":
			f.help = true
		case arg == "--":
			consumeAsPositional = true
		case arg == "-":
			positional = append(positional, arg)
		case strings.HasPrefix(arg, "--option="):
			names := strings.Split(strings.TrimPrefix(arg, "--option="), ",")
			for _, name := range names {
				bit, ok := optionNames[name]
				if !ok {
					return flags{}, nil, fmt.Errorf("unknown option: %s", name)
				}
				f.option |= bit
			}
		case strings.HasPrefix(arg, "--corpus="):
			f.corpus = strings.TrimPrefix(arg, "--corpus=")
		case strings.HasPrefix(arg, "-"):
			return flags{}, nil, fmt.Errorf("unknown flag: %s", arg)
		default:
			positional = append(positional, arg)
		}
	}
	return f, positional, nil
}

func cmdEncode(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	fl, positional, err := parseFlags(args)
	if err != nil {
		return writeErrorAndReturn(stderr, tjerr.CLIUsage.ExitCode(), "error: %v\n", err)
	}
	if fl.help {
		_ = writeEncodeHelp(stderr)
		return 0
	}
	if fl.corpus != "" {
		return cmdCorpus(fl, stdout, stderr)
	}
	if exitCode, ok := ensureSingleInput(positional, stderr); ok {
		return exitCode
	}

	input, err := readInput(positional, stdin)
	if err != nil {
		return writeClassifiedError(stderr, err)
	}

	tree, err := turbojson.Decode(input)
	if err != nil {
		return writeClassifiedError(stderr, err)
	}

	out, err := turbojson.Encode(tree, nil, fl.option)
	if err != nil {
		return writeClassifiedError(stderr, err)
	}

	if _, err := stdout.Write(out); err != nil {
		return writeErrorAndReturn(stderr, tjerr.InternalIO.ExitCode(), "error: writing output: %v\n", err)
	}
	return 0
}

func cmdDecode(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	fl, positional, err := parseFlags(args)
	if err != nil {
		return writeErrorAndReturn(stderr, tjerr.CLIUsage.ExitCode(), "error: %v\n", err)
	}
	if fl.help {
		_ = writeDecodeHelp(stderr)
		return 0
	}
	if exitCode, ok := ensureSingleInput(positional, stderr); ok {
		return exitCode
	}

	input, err := readInput(positional, stdin)
	if err != nil {
		return writeClassifiedError(stderr, err)
	}

	if _, err := turbojson.Decode(input); err != nil {
		return writeClassifiedError(stderr, err)
	}

	if !fl.quiet {
		_ = writeLine(stdout, "ok")
	}
	return 0
}

func writeClassifiedError(stderr io.Writer, err error) int {
	var de *tjerr.DecodeError
	if errors.As(err, &de) {
		_ = writef(stderr, "error: %v\n", err)
		return de.Class.ExitCode()
	}
	var ee *tjerr.EncodeError
	if errors.As(err, &ee) {
		_ = writef(stderr, "error: %v\n", err)
		return ee.Class.ExitCode()
	}
	return writeErrorAndReturn(stderr, tjerr.InternalError.ExitCode(), "error: %v\n", err)
}

func readInput(positional []string, stdin io.Reader) ([]byte, error) {
	if len(positional) == 0 || positional[0] == "-" {
		return io.ReadAll(stdin)
	}
	f, err := os.Open(positional[0])
	if err != nil {
		return nil, tjerr.WrapEncodeError(tjerr.CLIUsage, fmt.Sprintf("read file %q", positional[0]), err)
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

func ensureSingleInput(positional []string, stderr io.Writer) (int, bool) {
	if len(positional) <= 1 {
		return 0, false
	}
	_ = writeLine(stderr, "error: multiple input files specified")
	return tjerr.CLIUsage.ExitCode(), true
}

func writeErrorAndReturn(stderr io.Writer, code int, format string, args ...any) int {
	_ = writef(stderr, format, args...)
	return code
}

func writeEncodeHelp(stderr io.Writer) error {
	if err := writeLine(stderr, "usage: turbojson encode [--option=NAME,...] [file|-]"); err != nil {
		return err
	}
	return writeLine(stderr, "  Decode JSON from file (or stdin), re-encode it, emit bytes to stdout.")
}

func writeDecodeHelp(stderr io.Writer) error {
	if err := writeLine(stderr, "usage: turbojson decode [--quiet] [file|-]"); err != nil {
		return err
	}
	return writeLine(stderr, "  Parse JSON from file (or stdin); print \"ok\" on success unless --quiet.")
}

func writeGlobalHelp(w io.Writer) error {
	if err := writeLine(w, "usage: turbojson <encode|decode> [options] [file|-]"); err != nil {
		return err
	}
	if err := writeLine(w, "       turbojson --help"); err != nil {
		return err
	}
	if err := writeLine(w, "       turbojson --version"); err != nil {
		return err
	}
	if err := writeLine(w, "commands: encode, decode"); err != nil {
		return err
	}
	return writeLine(w, "flags: --help, -h, --version, --quiet, --option=NAME,..., --corpus=FILE")
}

func writeVersion(w io.Writer) error {
	return writeLine(w, "turbojson "+version)
}

func writeLine(w io.Writer, msg string) error {
	return writef(w, "%s\n", msg)
}

func writef(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("write stream: %w", err)
	}
	return nil
}

var version = "v0.0.0-dev"
