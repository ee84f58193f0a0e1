// Package resubmit normalizes admin rejection identifiers. Rejections are
// recorded at mixed granularity: sometimes one field, sometimes a whole
// section. The filter collapses both forms behind one predicate so callers
// never need to know which form the reviewer used.
package resubmit

// RejectionSet holds the field and section identifiers an administrator
// rejected on a prior submission.
type RejectionSet map[string]bool

// NewRejectionSet builds a set from the identifiers returned by the backend.
func NewRejectionSet(ids []string) RejectionSet {
	set := make(RejectionSet, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// IsFlagged reports whether a field needs correction: either the field itself
// was rejected, or the section it rolls up to was.
func IsFlagged(fieldID string, set RejectionSet) bool {
	if set[fieldID] {
		return true
	}
	if section, ok := fieldSections[fieldID]; ok {
		return set[section]
	}
	return false
}

// StepsRequiringReentry returns the names of wizard steps containing at least
// one flagged field or section, in walk order.
func StepsRequiringReentry(set RejectionSet) []string {
	flagged := make(map[string]bool)
	for id := range set {
		if step, ok := sectionSteps[id]; ok {
			flagged[step] = true
			continue
		}
		if section, ok := fieldSections[id]; ok {
			if step, ok := sectionSteps[section]; ok {
				flagged[step] = true
			}
		}
	}

	var steps []string
	for _, step := range stepOrder {
		if flagged[step] {
			steps = append(steps, step)
		}
	}
	return steps
}
