package access

import "strings"

// Scope describes the context a permission check happens in. Every field
// is optional; an empty field on a rule means the rule applies to all
// values of that dimension.
type Scope struct {
	ProjectID     string `json:"projectId,omitempty"`
	EnvironmentID string `json:"environmentId,omitempty"`
	SchemaID      string `json:"schemaId,omitempty"`
	ContentStatus string `json:"contentStatus,omitempty"`
}

// Normalize returns a copy of the scope with the content status folded to
// lower case. Content status is the only dimension matched without case
// sensitivity; identifiers are compared exactly.
func (s Scope) Normalize() Scope {
	s.ContentStatus = strings.ToLower(s.ContentStatus)
	return s
}

// IsEmpty reports whether no dimension is constrained.
func (s Scope) IsEmpty() bool {
	return s.ProjectID == "" && s.EnvironmentID == "" && s.SchemaID == "" && s.ContentStatus == ""
}

// Key returns a stable string form of the scope, suitable for use as a
// cache key.
func (s Scope) Key() string {
	n := s.Normalize()

	var b strings.Builder
	b.WriteString(n.ProjectID)
	b.WriteByte('|')
	b.WriteString(n.EnvironmentID)
	b.WriteByte('|')
	b.WriteString(n.SchemaID)
	b.WriteByte('|')
	b.WriteString(n.ContentStatus)

	return b.String()
}

// Applies reports whether a rule scope covers a request scope. Each
// dimension matches when the rule leaves it empty or when both sides carry
// the same value; all four dimensions must match. A request may leave a
// dimension empty too, in which case only rules that do not constrain that
// dimension apply.
func Applies(rule, request Scope) bool {
	return dimensionMatches(rule.ProjectID, request.ProjectID) &&
		dimensionMatches(rule.EnvironmentID, request.EnvironmentID) &&
		dimensionMatches(rule.SchemaID, request.SchemaID) &&
		dimensionMatches(strings.ToLower(rule.ContentStatus), strings.ToLower(request.ContentStatus))
}

func dimensionMatches(rule, request string) bool {
	return rule == "" || rule == request
}
