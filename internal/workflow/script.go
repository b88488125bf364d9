package workflow

import "strings"

// Script renders commands into a single shell script body. Each command
// may span several lines: blank lines at either end are dropped, trailing
// whitespace is removed, and the indentation shared by its non-blank lines
// is stripped so the result does not depend on how the caller indented it.
// Commands are joined with a newline in call order; commands that are
// blank are skipped. Nothing is escaped
func Script(commands ...string) string {
	blocks := make([]string, 0, len(commands))
	for _, cmd := range commands {
		if block := dedent(cmd); block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n")
}

func dedent(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	lines = lines[start:end]
	if len(lines) == 0 {
		return ""
	}

	prefix := ""
	first := true
	for _, line := range lines {
		if line == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix = indent
			first = false
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
