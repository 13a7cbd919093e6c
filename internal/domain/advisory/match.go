package advisory

import "strings"

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsAny reports whether s contains any of the patterns. s and the
// patterns are expected to be lower case already.
func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// overlaps reports whether either string contains the other, ignoring case.
// Blank strings never overlap.
func overlaps(a, b string) bool {
	na, nb := normalize(a), normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func monitoringFor(labs, params []string) []string {
	out := make([]string, 0, len(params)+1)
	out = append(out, params...)
	if len(labs) > 0 {
		out = append(out, "Labs: "+strings.Join(labs, ", "))
	}
	return out
}

func blackBox(text string) string {
	return "BLACK BOX WARNING: " + text
}
