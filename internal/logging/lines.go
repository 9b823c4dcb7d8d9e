package logging

import "strings"

// LogLines emits one record per line of captured program output.
// Trailing whitespace is trimmed and a final empty line is dropped.
func LogLines(emit func(format string, args ...interface{}), text string) {
	if text == "" {
		return
	}
	lines := strings.Split(strings.TrimRight(text, "\r\n"), "\n")
	for _, line := range lines {
		emit("%s", strings.TrimRight(line, " \t\r"))
	}
}
