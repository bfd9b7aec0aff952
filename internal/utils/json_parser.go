package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyModelOutput is returned when the model replied with nothing to parse.
var ErrEmptyModelOutput = errors.New("empty model output")

var (
	fencedJSONBlock  = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	trailingComma    = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKey      = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)
	controlCharacter = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// ParseModelJSON decodes a JSON object produced by a language model into target.
// Even with a JSON response format some providers wrap the object in a
// markdown fence, prepend a sentence, or leave a trailing comma. The
// strategies are tried from the strictest to the most forgiving:
//   - the raw content
//   - the body of a ``` fenced block
//   - the first balanced {...} in the text
//   - the balanced object after light repairs
func ParseModelJSON(input string, target any) error {
	input = strings.TrimSpace(strings.TrimPrefix(input, "\ufeff"))
	if input == "" {
		return ErrEmptyModelOutput
	}

	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if m := fencedJSONBlock.FindStringSubmatch(input); len(m) > 1 {
		if err := json.Unmarshal([]byte(m[1]), target); err == nil {
			return nil
		}
	}

	object := extractObject(input)
	if object != "" {
		if err := json.Unmarshal([]byte(object), target); err == nil {
			return nil
		}
		if err := json.Unmarshal([]byte(repairJSON(object)), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no JSON object in model output: %s", truncate(input, 100))
}

// extractObject returns the first brace-balanced object in s, ignoring braces
// inside string literals.
func extractObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// repairJSON fixes the mistakes models make most often: trailing commas,
// bare keys and stray control characters.
func repairJSON(s string) string {
	s = trailingComma.ReplaceAllString(s, "$1")
	s = unquotedKey.ReplaceAllString(s, `$1"$2"$3`)
	return controlCharacter.ReplaceAllString(s, "")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
