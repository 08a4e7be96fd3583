package service

import (
	"regexp"
	"strings"
)

var (
	fenceStartRe = regexp.MustCompile("(?is)^\\s*```(?:json)?\\s*")
	fenceEndRe   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// cleanModelOutput quita BOM y fences ```json ... ``` de la respuesta del modelo.
func cleanModelOutput(raw string) string {
	s := strings.TrimSpace(strings.TrimPrefix(raw, "\uFEFF"))
	if s == "" {
		return ""
	}
	s = fenceStartRe.ReplaceAllString(s, "")
	s = fenceEndRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// extractJSONObject devuelve el primer objeto JSON balanceado del texto.
// Las llaves dentro de literales string (con escapes) no cuentan para el balance,
// así que prosa antes o después del objeto no afecta la extracción.
// ok=false si no hay '{' o el objeto nunca cierra.
func extractJSONObject(input string) (obj string, ok bool) {
	start := strings.IndexByte(input, '{')
	if start == -1 {
		return "", false
	}

	var (
		depth    int
		inString bool
		escaped  bool
	)
	for i := start; i < len(input); i++ {
		ch := input[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1], true
			}
		}
	}
	return "", false
}
