// Command toymap is a thin CLI over the toymap pass dispatcher: it
// reads a JSON-encoded netlist.Module from stdin (or a file given as the
// last argument), runs one of the five passes named on argv[1], and writes
// the resulting Module as JSON to stdout.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lvlath-labs/toymap/netlist"
	"github.com/lvlath-labs/toymap/toymap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "toymap:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: toymap <%s|%s|%s|%s|%s> [flags] [module.json]",
			toymap.ToyMap, toymap.LutDepth, toymap.LutNot, toymap.LutRewriteOnce, toymap.LutRewrite)
	}

	cmd, err := parseCommand(args[0])
	if err != nil {
		return err
	}
	rest := args[1:]

	in, inPath, rest := splitInputPath(rest)
	var r io.Reader = os.Stdin
	if in != nil {
		r = in
		defer in.Close()
	}

	var m netlist.Module
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return fmt.Errorf("decoding %s: %w", displayName(inPath), err)
	}

	out, err := toymap.Dispatch(context.Background(), cmd, &m, rest)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func parseCommand(name string) (toymap.Command, error) {
	switch name {
	case toymap.ToyMap.String():
		return toymap.ToyMap, nil
	case toymap.LutDepth.String():
		return toymap.LutDepth, nil
	case toymap.LutNot.String():
		return toymap.LutNot, nil
	case toymap.LutRewriteOnce.String():
		return toymap.LutRewriteOnce, nil
	case toymap.LutRewrite.String():
		return toymap.LutRewrite, nil
	default:
		return 0, fmt.Errorf("%w: %s", toymap.ErrUnknownCommand, name)
	}
}

// splitInputPath pulls a trailing non-flag argument (the input file path)
// off args, if present, and opens it; otherwise the caller reads stdin.
func splitInputPath(args []string) (f *os.File, path string, rest []string) {
	if len(args) == 0 {
		return nil, "", args
	}
	last := args[len(args)-1]
	if len(last) > 0 && last[0] == '-' {
		return nil, "", args
	}
	file, err := os.Open(last)
	if err != nil {
		slog.Default().Warn("could not open input file, falling back to stdin", "path", last, "err", err)

		return nil, "", args
	}

	return file, last, args[:len(args)-1]
}

func displayName(path string) string {
	if path == "" {
		return "stdin"
	}

	return path
}
