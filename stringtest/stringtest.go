// Package stringtest builds and inspects expected multi-line test output
// with explicit line endings, such as the accumulated contents of a log sink.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected sink contents with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"[info] first",
//		"[warn] second",
//		"",
//	) // -> "[info] first\n[warn] second\n"
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// Lines splits accumulated sink output into its lines, dropping the final
// empty element produced by a trailing newline. Use this to assert on
// individual emitted records.
//
// Example:
//
//	stringtest.Lines("[info] a\n[warn] b\n") // -> []string{"[info] a", "[warn] b"}
func Lines(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
