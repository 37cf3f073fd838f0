package service

import (
	"strings"

	"compliance-audit-trail/internal/core/domain"
)

// Redacted is the sentinel stored in place of any sensitive value.
const Redacted = "[REDACTED]"

// maxSanitizeDepth bounds recursion so a cyclic or pathologically nested
// value cannot blow the stack. Business payloads never come close.
const maxSanitizeDepth = 64

// Sanitizer redacts configured sensitive field names from structured values
// before they are stored. Matching is case-insensitive on the key name;
// nested maps and lists are walked recursively.
type Sanitizer struct {
	excluded map[string]struct{}
}

// NewSanitizer builds a sanitizer for the given field names.
func NewSanitizer(fields []string) *Sanitizer {
	excluded := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		excluded[strings.ToLower(f)] = struct{}{}
	}
	return &Sanitizer{excluded: excluded}
}

// IsSensitive reports whether the field name is in the redaction set.
func (s *Sanitizer) IsSensitive(field string) bool {
	_, ok := s.excluded[strings.ToLower(field)]
	return ok
}

// Sanitize returns a copy of v with every excluded key replaced by the
// redaction sentinel. Nil values and scalars pass through unchanged.
func (s *Sanitizer) Sanitize(v any) any {
	return s.sanitize(v, 0)
}

// SanitizeChanges redacts a change list. A change on a sensitive field has
// both its old and new value replaced; other changes have their values
// walked recursively in case they carry nested structures.
func (s *Sanitizer) SanitizeChanges(changes []domain.Change) []domain.Change {
	if len(changes) == 0 {
		return nil
	}
	out := make([]domain.Change, len(changes))
	for i, c := range changes {
		if s.IsSensitive(c.Field) {
			out[i] = domain.Change{Field: c.Field, OldValue: Redacted, NewValue: Redacted}
			continue
		}
		out[i] = domain.Change{
			Field:    c.Field,
			OldValue: s.sanitize(c.OldValue, 0),
			NewValue: s.sanitize(c.NewValue, 0),
		}
	}
	return out
}

func (s *Sanitizer) sanitize(v any, depth int) any {
	if v == nil || depth >= maxSanitizeDepth {
		return v
	}

	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if s.IsSensitive(k) {
				out[k] = Redacted
			} else {
				out[k] = s.sanitize(inner, depth+1)
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = s.sanitize(inner, depth+1)
		}
		return out
	default:
		return v
	}
}
