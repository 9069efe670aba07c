// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle conversational preambles and trailing commentary around the
	// first JSON value in the response.
	objIdx := strings.IndexByte(text, '{')
	arrIdx := strings.IndexByte(text, '[')
	start := objIdx
	if start < 0 || (arrIdx >= 0 && arrIdx < start) {
		start = arrIdx
	}
	if start >= 0 {
		var extracted string
		if text[start] == '{' {
			extracted = extractJSONObject(text[start:])
		} else {
			extracted = extractJSONArray(text[start:])
		}
		if extracted != "" {
			return extracted
		}
	}

	return text
}

// CleanCodeFences strips a surrounding markdown fence from non-JSON text
// (such as a compiled model description), leaving the body untouched.
func CleanCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(trimmed[:idx])
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") {
			trimmed = trimmed[idx+1:]
		}
	}
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

// extractJSONObject returns the first balanced JSON object in text, or ""
// when text does not start with one. Braces inside string literals are
// ignored.
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the first balanced JSON array in text, or ""
// when text does not start with one.
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

func extractBalanced(text string, open, close byte) string {
	if len(text) == 0 || text[0] != open {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// string contents do not affect nesting
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
