package util

import "strings"

// ToCIdent converts a schema name to a C identifier.
// Every character outside [A-Za-z0-9_] becomes '_' and a leading digit is
// prefixed with '_' (e.g., "log-level" -> "log_level", "2fa" -> "_2fa").
func ToCIdent(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i == 0 && r >= '0' && r <= '9' {
			result.WriteRune('_')
		}
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}
	return result.String()
}

// ToScreamingSnake converts a schema name to an upper-case C macro fragment
// (e.g., "my-app" -> "MY_APP").
func ToScreamingSnake(s string) string {
	return strings.ToUpper(ToCIdent(s))
}
