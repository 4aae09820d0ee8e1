// Package dotenv loads KEY=VALUE files used to seed the environment of a local
// launch.
//
// The grammar is permissive on purpose: a line that is not an assignment (no
// '=', or an empty key) is dropped without a diagnostic, so a broken line never
// stops a launch. Comments start with '#' at the beginning of a trimmed line,
// an optional "export " prefix is removed, and one layer of matching single or
// double quotes around the value is stripped. Nothing is expanded or unescaped.
// Use Lint to find lines that stricter dotenv readers would treat differently.
package dotenv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"strings"

	"github.com/fortunelog/fortunelog-dev/pkg/types"
)

const exportPrefix = "export "

// ParseLine applies the assignment grammar to a single line. ok is false for
// blank lines, comments and lines without a usable key.
func ParseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	if rest, found := strings.CutPrefix(line, exportPrefix); found {
		line = strings.TrimSpace(rest)
	}

	idx := strings.IndexByte(line, '=')
	if idx <= 0 {
		return "", "", false
	}

	key = strings.TrimSpace(line[:idx])
	if key == "" {
		return "", "", false
	}
	return key, unquote(strings.TrimSpace(line[idx+1:])), true
}

// unquote strips one layer of quoting when the first and last characters are
// the same quote character.
func unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	first, last := v[0], v[len(v)-1]
	if first == last && (first == '"' || first == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

// lines yields the trimmed lines of sc lazily. Iteration stops at EOF or at
// the first read error; sc.Err reports the latter.
func lines(sc *bufio.Scanner) iter.Seq[string] {
	return func(yield func(string) bool) {
		for sc.Scan() {
			if !yield(strings.TrimSpace(sc.Text())) {
				return
			}
		}
	}
}

// Lines returns a lazy sequence of the trimmed lines of r. Read errors end
// the sequence silently; use Parse when they matter.
func Lines(r io.Reader) iter.Seq[string] {
	return lines(newScanner(r))
}

// maxLineSize bounds a single line. Certificates and keys pasted inline run
// well past bufio's 64 KiB default.
const maxLineSize = 16 << 20

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return sc
}

// Parse reads assignments from r. Later assignments to the same key replace
// earlier ones. Only read failures are returned as errors.
func Parse(r io.Reader) (types.EnvTable, error) {
	sc := newScanner(r)
	var pairs []types.Pair
	for line := range lines(sc) {
		if k, v, ok := ParseLine(line); ok {
			pairs = append(pairs, types.Pair{Key: k, Value: v})
		}
	}
	if err := sc.Err(); err != nil {
		return types.EnvTable{}, fmt.Errorf("read dotenv: %w", err)
	}
	return types.NewEnvTable(pairs...), nil
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) types.EnvTable {
	table, _ := Parse(strings.NewReader(s))
	return table
}

// Load parses the file at path. A file that does not exist yields an empty
// table and a nil error.
func Load(path string) (types.EnvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.EnvTable{}, nil
		}
		return types.EnvTable{}, fmt.Errorf("open dotenv: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
