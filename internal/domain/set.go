package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Field limits for sets.
const (
	MaxSetNameLength     = 100
	MaxFolderLength      = 100
	MaxDescriptionLength = 500
)

var setNamePattern = regexp.MustCompile(`^[\p{L}\p{N} _-]+$`)

// Set is a named, foldered collection of terms scoped to one language.
// Names are not unique within a language and folder.
type Set struct {
	ID           int64    `json:"id"`
	Language     Language `json:"langOfSet"`
	Name         string   `json:"setName"`
	Folder       string   `json:"setFolder"`
	Description  string   `json:"description"`
	DateCreated  Date     `json:"dateCreated"`
	DateModified Date     `json:"dateModified"`
}

// NewSet builds a validated Set created on the day of now. The id is left
// zero; it is assigned by the store.
func NewSet(lang Language, name, folder, description string, now time.Time) (*Set, error) {
	today := NewDate(now)
	set := &Set{
		Language:     lang,
		Name:         strings.TrimSpace(name),
		Folder:       strings.TrimSpace(folder),
		Description:  description,
		DateCreated:  today,
		DateModified: today,
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks the user supplied fields of the set.
func (s *Set) Validate() error {
	if !s.Language.Valid() {
		return NewValidationError("language", "is not supported: "+string(s.Language), ErrUnsupportedLanguage)
	}
	if err := ValidateSetName(s.Name); err != nil {
		return err
	}
	if err := ValidateFolder(s.Folder); err != nil {
		return err
	}
	if len(s.Description) > MaxDescriptionLength {
		return NewValidationError("description", "is too long", ErrValidation)
	}
	return nil
}

// ValidateSetName accepts letters and digits of any script, space, hyphen
// and underscore only.
func ValidateSetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("setName", "cannot be empty", ErrEmptyContent)
	}
	if len(name) > MaxSetNameLength {
		return NewValidationError("setName", "is too long", ErrInvalidSetName)
	}
	if !setNamePattern.MatchString(name) {
		return NewValidationError("setName", "may only contain letters, digits, space, hyphen and underscore", ErrInvalidSetName)
	}
	return nil
}

// ValidateFolder requires a non-empty folder label without control
// characters. Control characters are reserved for grouping keys.
func ValidateFolder(folder string) error {
	if strings.TrimSpace(folder) == "" {
		return NewValidationError("setFolder", "cannot be empty", ErrEmptyContent)
	}
	if len(folder) > MaxFolderLength {
		return NewValidationError("setFolder", "is too long", ErrValidation)
	}
	if strings.IndexFunc(folder, unicode.IsControl) >= 0 {
		return NewValidationError("setFolder", "contains control characters", ErrValidation)
	}
	return nil
}
