package main

import (
	"os"
	"regexp"
	"strings"
)

// defaultLogLines is how many trailing terminal lines are used as
// error context for a fix request.
const defaultLogLines = 30

var (
	ansiCSIRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	ansiOSCRe = regexp.MustCompile(`\x1b\][^\x07]*\x07`)
	ctrlRe    = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)
)

// readTerminalLog reads the last n lines from a script(1) log file, if
// one is configured, and strips terminal escape sequences. Returns an
// empty string when the log is missing or unreadable; fix requests
// then proceed without terminal context.
func readTerminalLog(path string, n int) string {
	if path == "" {
		return ""
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	lines := strings.Split(string(b), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return StripANSI(strings.Join(lines, "\n"))
}

// StripANSI removes ANSI escape sequences and control characters from
// terminal output.
func StripANSI(s string) string {
	s = ansiCSIRe.ReplaceAllString(s, "")
	s = ansiOSCRe.ReplaceAllString(s, "")
	s = ctrlRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
