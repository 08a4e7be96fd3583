package domain

import (
	"strings"
	"unicode"
)

// DisplayRole es el nombre del puesto tal como aparece en el prompt.
func DisplayRole(jobRole, customJobRole string) string {
	if jobRole == CustomJobRole {
		return customJobRole
	}
	return strings.ReplaceAll(jobRole, "-", " ")
}

// FormatJobRole capitaliza cada palabra del nombre visible ("ui ux designer" -> "Ui Ux Designer").
func FormatJobRole(jobRole, customJobRole string) string {
	words := strings.Fields(DisplayRole(jobRole, customJobRole))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
