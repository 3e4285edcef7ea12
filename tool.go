package cmdmend

import (
	"strings"
)

// shell metacharacters that disqualify a string from being a plain
// executable name.
const toolMetaChars = "|&;<>()$`\\\"' \t\n*?[]#~%{}"

// NormalizeToolName normalizes a candidate tool name extracted from
// model output: trims whitespace and wrapping quotes or backticks and
// lowercases the result. Returns ENOTFOUND when the normalized value
// does not look like a plausible executable name.
func NormalizeToolName(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "`\"'")
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)

	// Models occasionally answer with a terminating period.
	s = strings.TrimSuffix(s, ".")

	if s == "" || s == "none" || s == "unknown" {
		return "", Errorf(ENOTFOUND, "no tool identified")
	}
	if len(s) > 64 {
		return "", Errorf(ENOTFOUND, "implausible tool name %q", s[:64])
	}
	if strings.ContainsAny(s, toolMetaChars) {
		return "", Errorf(ENOTFOUND, "implausible tool name %q", s)
	}
	if strings.Contains(s, "/") {
		// Accept absolute paths by reducing to the basename.
		if i := strings.LastIndex(s, "/"); i < len(s)-1 {
			s = s[i+1:]
		} else {
			return "", Errorf(ENOTFOUND, "implausible tool name %q", s)
		}
	}
	return s, nil
}

// FirstToken returns the first whitespace-delimited token of a command
// line, or an empty string if there is none. Used to derive a tool
// name from a failed command without a model call.
func FirstToken(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
