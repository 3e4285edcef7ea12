package cmdmend

import (
	"regexp"
	"strings"
)

// DefaultMaxPassageLen bounds passage length in bytes. Tuned to the
// effective context of small embedding models; a few hundred tokens.
const DefaultMaxPassageLen = 1200

var headingRe = regexp.MustCompile(`(?m)^(#{1,6}\s+.+|[A-Z][A-Z0-9 _-]{2,})$`)

// SplitPassages splits documentation text into passages bounded by
// maxLen bytes, preferring natural boundaries (section headings, blank
// lines) over mid-sentence cuts. Splitting is deterministic: identical
// input always yields identical passages.
func SplitPassages(content string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxPassageLen
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	var passages []string
	var sb strings.Builder

	flush := func() {
		if s := strings.TrimSpace(sb.String()); s != "" {
			passages = append(passages, s)
		}
		sb.Reset()
	}

	for _, block := range splitBlocks(content) {
		// A heading starts a new passage so each passage stays
		// coherent with its section.
		if headingRe.MatchString(block) && sb.Len() > 0 {
			flush()
		}
		if sb.Len() > 0 && sb.Len()+len(block)+2 > maxLen {
			flush()
		}
		if len(block) > maxLen {
			flush()
			for _, part := range splitOversized(block, maxLen) {
				passages = append(passages, part)
			}
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(block)
	}
	flush()

	return passages
}

// splitBlocks splits text on blank lines into trimmed blocks.
func splitBlocks(content string) []string {
	var blocks []string
	for _, b := range regexp.MustCompile(`\n\s*\n`).Split(content, -1) {
		b = strings.TrimRight(b, " \t\n")
		if strings.TrimSpace(b) != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// splitOversized splits a single block that exceeds maxLen, cutting at
// line boundaries where possible and mid-line only as a last resort.
func splitOversized(block string, maxLen int) []string {
	var parts []string
	var sb strings.Builder

	for _, line := range strings.Split(block, "\n") {
		for len(line) > maxLen {
			if sb.Len() > 0 {
				parts = append(parts, strings.TrimSpace(sb.String()))
				sb.Reset()
			}
			parts = append(parts, strings.TrimSpace(line[:maxLen]))
			line = line[maxLen:]
		}
		if sb.Len() > 0 && sb.Len()+len(line)+1 > maxLen {
			parts = append(parts, strings.TrimSpace(sb.String()))
			sb.Reset()
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line)
	}
	if s := strings.TrimSpace(sb.String()); s != "" {
		parts = append(parts, s)
	}
	return parts
}
