package model

import "strings"

// Scope is the coarse visibility partition of the institution. Documents and
// children both carry one; family-role access is decided against it.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeTaller1 Scope = "taller1"
	ScopeTaller2 Scope = "taller2"
)

// WorkshopScopes are the two non-global scopes a guardian can hold. A
// guardian's scope set is always a subset of these.
var WorkshopScopes = []Scope{ScopeTaller1, ScopeTaller2}

// NormalizeScope maps the historical spellings of a scope onto the canonical
// enum. Empty values and the "todos"/"all"/"global" aliases mean global, the
// two workshop values pass through, and anything unrecognized falls back to
// global. The same rule applies to document scopes and to scopes derived from
// child records.
func NormalizeScope(raw string) Scope {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "todos", "all", "global":
		return ScopeGlobal
	case string(ScopeTaller1):
		return ScopeTaller1
	case string(ScopeTaller2):
		return ScopeTaller2
	default:
		return ScopeGlobal
	}
}

// NormalizeRole trims and lowercases a role value. An empty result means the
// caller has no usable role and must be treated as unauthorized.
func NormalizeRole(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
