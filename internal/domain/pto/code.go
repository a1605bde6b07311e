package pto

import "strings"

// NormalizeCode canonicalizes a PTO type code: uppercase, every run of
// non-alphanumeric characters collapsed to a single underscore, leading and
// trailing underscores trimmed. Returns "" when nothing usable remains.
func NormalizeCode(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	pendingSep := false
	for _, r := range strings.ToUpper(strings.TrimSpace(raw)) {
		alnum := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
