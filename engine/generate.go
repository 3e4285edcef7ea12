package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/cmdmend"
)

const askSystemPrompt = `You are a concise assistant for command-line tools. Answer using the documentation provided. If the documentation does not cover the question, answer from general knowledge and say the documentation did not cover it.`

const fixInstruction = `The corrected command. Respond with exactly one command line and nothing else.`

// askOptions and fixOptions bound generation per call.
var (
	askOptions = cmdmend.CompleteOptions{
		MaxTokens:   512,
		Temperature: 0.4,
	}
	fixOptions = cmdmend.CompleteOptions{
		MaxTokens:   256,
		Stop:        []string{"\n\n"},
		Temperature: 0.2,
	}
)

// generateAnswer composes the ask prompt and invokes the model once.
// An inference failure is fatal for the request.
func (e *Engine) generateAnswer(ctx context.Context, question string, results []cmdmend.SearchResult) (string, error) {
	var sb strings.Builder
	sb.WriteString(askSystemPrompt)
	sb.WriteString("\n\n")
	writeContext(&sb, results, e.contextBudget())
	fmt.Fprintf(&sb, "Question: %s\n\nAnswer:", question)

	text, err := e.Completer.Complete(ctx, sb.String(), askOptions)
	if err != nil {
		return "", err
	}

	answer := strings.TrimSpace(text)
	if answer == "" {
		return "", cmdmend.Errorf(cmdmend.EINTERNAL, "model returned empty answer")
	}
	return answer, nil
}

// generateFix composes the fix prompt, invokes the model once and
// parses a single command line from the response. When no plausible
// command can be isolated the raw model text is returned with
// Parsed=false rather than failing outright.
func (e *Engine) generateFix(ctx context.Context, failed cmdmend.FailedCommand, results []cmdmend.SearchResult) (*cmdmend.FixSuggestion, error) {
	var sb strings.Builder
	sb.WriteString("A shell command failed. Suggest the corrected command.\n\n")
	writeContext(&sb, results, e.contextBudget())
	fmt.Fprintf(&sb, "Failed command: %s\n", failed.Command)
	fmt.Fprintf(&sb, "Exit code: %d\n", failed.ExitCode)
	if failed.Stderr != "" {
		fmt.Fprintf(&sb, "Error output:\n%s\n", failed.Stderr)
	}
	sb.WriteString("\n")
	sb.WriteString(fixInstruction)

	text, err := e.Completer.Complete(ctx, sb.String(), fixOptions)
	if err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil, cmdmend.Errorf(cmdmend.EINTERNAL, "model returned empty fix")
	}

	command, ok := ParseFixCommand(raw)
	if !ok {
		e.logger().Debug("could not isolate a command from model output")
		return &cmdmend.FixSuggestion{Raw: raw, Parsed: false}, nil
	}
	return &cmdmend.FixSuggestion{Command: command, Raw: raw, Parsed: true}, nil
}

// writeContext appends provenance-tagged passages to the prompt under
// a character budget. Passages arrive ranked; later (lower-ranked)
// passages are dropped first when over budget.
func writeContext(sb *strings.Builder, results []cmdmend.SearchResult, budget int) {
	if len(results) == 0 {
		return
	}

	used := 0
	sb.WriteString("<documentation>\n")
	for _, r := range results {
		if used+len(r.Passage.Content) > budget {
			break
		}
		fmt.Fprintf(sb, "<passage source=%q>\n%s\n</passage>\n", string(r.Passage.Source), r.Passage.Content)
		used += len(r.Passage.Content)
	}
	sb.WriteString("</documentation>\n\n")
}

var firstTokenRe = regexp.MustCompile(`^(\./|/)?[a-zA-Z0-9._+-]+(/[a-zA-Z0-9._+-]+)*$`)

// proseLeads are words that start explanatory sentences, not commands.
var proseLeads = map[string]bool{
	"the": true, "this": true, "it": true, "you": true, "your": true,
	"use": true, "try": true, "run": true, "here": true, "sorry": true,
	"to": true, "note": true, "instead": true,
}

// ParseFixCommand isolates a single command line from model output,
// stripping code fences, shell prompt prefixes and inline backticks.
// Returns false when no line looks like a runnable command.
func ParseFixCommand(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.TrimPrefix(line, "$ ")
		line = strings.TrimPrefix(line, "> ")
		line = strings.Trim(line, "`")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Prose detection: a command's first token is an executable
		// name, sentences end with punctuation.
		if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ":") {
			continue
		}
		first := cmdmend.FirstToken(line)
		if !firstTokenRe.MatchString(first) || proseLeads[strings.ToLower(first)] {
			continue
		}
		return line, true
	}
	return "", false
}
