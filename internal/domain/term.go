package domain

import (
	"strings"
	"unicode/utf8"
)

// Term field limits, in characters for words and bytes for definitions.
// Both follow the narrowest column among the supported databases.
const (
	MaxWordLength       = 255
	MaxDefinitionLength = 65535
)

// Term is a single vocabulary entry in a language-specific table.
// Terms are created and deleted but never updated in place.
type Term struct {
	ID         int64  `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// LinkedTerm is a Term as seen through a set: it also carries the id of the
// linkage row that attaches it, which defines insertion order within the set.
type LinkedTerm struct {
	Term
	LinkageID int64 `json:"linkageId"`
}

// TermEntry is the input for creating a term.
type TermEntry struct {
	Word       string `json:"word" yaml:"word"`
	Definition string `json:"definition" yaml:"definition"`
}

// Validate checks that both fields are present and fit their columns.
func (e TermEntry) Validate() error {
	if strings.TrimSpace(e.Word) == "" {
		return NewValidationError("word", "cannot be empty", ErrEmptyContent)
	}
	if utf8.RuneCountInString(e.Word) > MaxWordLength {
		return NewValidationError("word", "is too long", ErrValidation)
	}
	if strings.TrimSpace(e.Definition) == "" {
		return NewValidationError("definition", "cannot be empty", ErrEmptyContent)
	}
	if len(e.Definition) > MaxDefinitionLength {
		return NewValidationError("definition", "is too long", ErrValidation)
	}
	return nil
}
