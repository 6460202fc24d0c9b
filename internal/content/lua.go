package content

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// LuaString renders s as a double-quoted Lua string literal
func LuaString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// LuaStringList renders a table of string literals: {"a", "b"}
func LuaStringList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = LuaString(item)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

// CleanName lower-cases s and collapses anything that is not a letter or
// digit into single underscores.
func CleanName(s string) string {
	return strings.Trim(strings.ToLower(nonAlnum.ReplaceAllString(s, "_")), "_")
}

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest: "basic_math" becomes "Basic_Math".
func TitleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		switch {
		case isLetter && !prevLetter:
			b.WriteString(strings.ToUpper(string(r)))
		case isLetter:
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}
