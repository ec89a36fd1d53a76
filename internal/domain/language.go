package domain

import "strings"

// Language identifies one of the fixed set of languages the service stores
// terms for. Every language owns one structurally identical term table.
type Language string

// Supported languages.
const (
	LanguageSpanish  Language = "spanish"
	LanguageJapanese Language = "japanese"
)

var termTables = map[Language]string{
	LanguageSpanish:  "spanishtable",
	LanguageJapanese: "japanesetable",
}

// Languages returns the supported languages in a stable order.
func Languages() []Language {
	return []Language{LanguageSpanish, LanguageJapanese}
}

// ParseLanguage converts a caller supplied tag into a Language.
// Matching ignores case and surrounding whitespace.
func ParseLanguage(tag string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(tag)))
	if !lang.Valid() {
		return "", NewValidationError("language", "is not supported: "+tag, ErrUnsupportedLanguage)
	}
	return lang, nil
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	_, ok := termTables[l]
	return ok
}

// TermTable returns the name of the term table for l.
func (l Language) TermTable() (string, error) {
	table, ok := termTables[l]
	if !ok {
		return "", NewValidationError("language", "is not supported: "+string(l), ErrUnsupportedLanguage)
	}
	return table, nil
}

func (l Language) String() string {
	return string(l)
}
