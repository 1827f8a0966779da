package engine

import (
	"fmt"
	"sort"
	"strings"
)

// names.go - Identifier mangling and suggestion helpers
//
// The code generator keeps two names per variable: the user-visible
// logical name and the mangled storage name that is globally unique in
// the emitted listing. This package owns the mangling rules and the
// "did you mean" suggestion machinery used by undefined-variable
// diagnostics.

// ParamMarker separates a procedure name from a parameter name in the
// mangled form; any identifier containing it is resolved globally.
const ParamMarker = "__"

// MangleParam builds the storage name of a procedure parameter
func MangleParam(proc, name string) string {
	return proc + ParamMarker + name
}

// MangleLocal builds the storage name of a procedure-local variable
func MangleLocal(proc, name string) string {
	if proc == "" {
		return SanitizeName(name)
	}
	return "_" + proc + "_" + SanitizeName(name)
}

// MangleTemporary builds the storage name of a pool temporary from its
// kind-encoded prefix and a compiler-unique id.
func MangleTemporary(prefix string, id int) string {
	return fmt.Sprintf("_%s%d", prefix, id)
}

// MangleLabel builds a fresh jump label from a compiler-unique id
func MangleLabel(id int) string {
	return fmt.Sprintf("_label%d", id)
}

// SanitizeName rewrites a logical name into something every assembler
// accepts: BASIC allows sigils like $ and % in identifiers.
func SanitizeName(name string) string {
	var sb strings.Builder
	for _, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z',
			ch >= '0' && ch <= '9', ch == '_':
			sb.WriteRune(ch)
		case ch == '$':
			sb.WriteString("_s")
		case ch == '%':
			sb.WriteString("_i")
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

// MatchesPattern reports whether a name matches a registered global
// wildcard pattern. Only a trailing '*' is supported, which is all the
// language surface exposes.
func MatchesPattern(name, pattern string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(name, prefix)
	}
	return name == pattern
}

// Displace applies a +N byte displacement to a symbolic storage
// location, the convention the target layer uses for big-endian byte
// selection inside a multi-byte value.
func Displace(loc string, n int) string {
	if n == 0 {
		return loc
	}
	return fmt.Sprintf("%s+%d", loc, n)
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
	}
	for i := 0; i <= len(s1); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				min(matrix[i][j-1]+1,
					matrix[i-1][j-1]+cost))
		}
	}

	return matrix[len(s1)][len(s2)]
}

// SuggestSimilar finds defined identifiers within a small edit distance
// of an unresolved name, closest first, for diagnostics.
func SuggestSimilar(name string, candidates []string, maxSuggestions int) []string {
	type suggestion struct {
		name     string
		distance int
	}

	const threshold = 3
	var suggestions []suggestion
	for _, candidate := range candidates {
		dist := levenshteinDistance(name, candidate)
		if dist <= threshold && dist > 0 {
			suggestions = append(suggestions, suggestion{candidate, dist})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].distance == suggestions[j].distance {
			return suggestions[i].name < suggestions[j].name
		}
		return suggestions[i].distance < suggestions[j].distance
	})

	result := make([]string, 0, maxSuggestions)
	for i := 0; i < len(suggestions) && i < maxSuggestions; i++ {
		result = append(result, suggestions[i].name)
	}
	return result
}
