package domain

import "strconv"

// Linkage is one association row between a term and a set. The term side is
// a weak reference: which term table it points into is decided by the
// language of the set, not stored on the row.
type Linkage struct {
	ID     int64 `json:"id"`
	TermID int64 `json:"termId"`
	SetID  int64 `json:"setId"`
}

// AddTermsResult reports the outcome of linking terms to a set.
// Conflicts are reported here rather than as errors. On failure nothing was
// inserted.
type AddTermsResult struct {
	Success      bool    `json:"success"`
	Inserted     []int64 `json:"inserted,omitempty"`
	Duplicates   []int64 `json:"duplicates,omitempty"`
	UnknownTerms []int64 `json:"unknownTerms,omitempty"`
}

// RemoveTermsResult reports the outcome of unlinking terms from a set.
// On failure nothing was deleted.
type RemoveTermsResult struct {
	Success bool    `json:"success"`
	Deleted []int64 `json:"deleted,omitempty"`
	Missing []int64 `json:"missing,omitempty"`
}

// NormalizeIDs validates that every id is positive and drops repeats,
// keeping first-seen order.
func NormalizeIDs(field string, ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, NewValidationError(field, "contains a non-positive id: "+strconv.FormatInt(id, 10), ErrInvalidID)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

// ValidateID checks a single identifier.
func ValidateID(field string, id int64) error {
	if id <= 0 {
		return NewValidationError(field, "must be a positive integer", ErrInvalidID)
	}
	return nil
}

// Difference returns the members of want that are not in have, in want order.
func Difference(want, have []int64) []int64 {
	present := make(map[int64]struct{}, len(have))
	for _, id := range have {
		present[id] = struct{}{}
	}
	var out []int64
	for _, id := range want {
		if _, ok := present[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// Intersection returns the members of want that are also in have, in want order.
func Intersection(want, have []int64) []int64 {
	present := make(map[int64]struct{}, len(have))
	for _, id := range have {
		present[id] = struct{}{}
	}
	var out []int64
	for _, id := range want {
		if _, ok := present[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
