package matching

import (
	"strings"
	"unicode"
)

// aliases maps a canonical skill name to the variants reviewers and
// employers commonly type for it. Matching compares canonical forms.
var aliases = map[string][]string{
	"go":         {"golang"},
	"javascript": {"js", "ecmascript"},
	"typescript": {"ts"},
	"postgresql": {"postgres", "psql"},
	"kubernetes": {"k8s"},
	"ui design":  {"ui", "user interface design"},
}

var canonical = buildCanonical()

func buildCanonical() map[string]string {
	out := make(map[string]string, len(aliases)*3)
	for canon, variants := range aliases {
		out[canon] = canon
		for _, v := range variants {
			out[v] = canon
		}
	}
	return out
}

// NormalizeSkill lowercases, strips punctuation, collapses whitespace, and
// folds known aliases onto one canonical name.
func NormalizeSkill(input string) string {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return ""
	}

	b := strings.Builder{}
	b.Grow(len(input))
	lastWasSpace := false
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if unicode.IsSpace(r) {
			if b.Len() == 0 || lastWasSpace {
				continue
			}
			b.WriteByte(' ')
			lastWasSpace = true
		}
	}

	out := strings.TrimSpace(b.String())
	out = strings.Join(strings.Fields(out), " ")
	if canon, ok := canonical[out]; ok {
		return canon
	}
	return out
}

// NormalizeSkillSet returns the deduplicated canonical forms of names,
// dropping empties.
func NormalizeSkillSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		norm := NormalizeSkill(n)
		if norm == "" {
			continue
		}
		out[norm] = struct{}{}
	}
	return out
}
