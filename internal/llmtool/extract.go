package llmtool

import "strings"

// ExtractCode pulls generated code out of a model reply.
//
// Grammar: an opening line starting with ``` (an optional language tag may
// follow on the same line), the code lines, then a closing line starting
// with ```. The first complete block wins; inner blank lines are preserved
// while leading/trailing blank lines are dropped.
//
// Fallback rule: when the reply contains no complete fenced block (no fence
// at all, or an opening fence that is never closed), the entire reply is
// returned unchanged. The fallback is idempotent.
func ExtractCode(reply string) string {
	lines := strings.Split(reply, "\n")
	open := -1
	for i, line := range lines {
		if isFenceLine(line) {
			open = i
			break
		}
	}
	if open < 0 {
		return reply
	}
	closing := -1
	for i := open + 1; i < len(lines); i++ {
		if isFenceLine(lines[i]) {
			closing = i
			break
		}
	}
	if closing < 0 {
		return reply
	}

	inner := lines[open+1 : closing]
	for i := range inner {
		inner[i] = strings.TrimRight(inner[i], "\r")
	}
	// Drop surrounding blank lines, keep interior ones.
	start, end := 0, len(inner)
	for start < end && strings.TrimSpace(inner[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(inner[end-1]) == "" {
		end--
	}
	return strings.Join(inner[start:end], "\n")
}

// HasFencedBlock reports whether the reply contains a complete fenced block.
func HasFencedBlock(reply string) bool {
	lines := strings.Split(reply, "\n")
	seenOpen := false
	for _, line := range lines {
		if !isFenceLine(line) {
			continue
		}
		if seenOpen {
			return true
		}
		seenOpen = true
	}
	return false
}

func isFenceLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}
