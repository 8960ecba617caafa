package query

import (
	"net/url"
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// List collects a multi-valued parameter that may arrive either repeated
// (?k=a&k=b) or comma-separated (?k=a,b), or both.
func List(values url.Values, key string) []string {
	var res []string
	for _, raw := range values[key] {
		res = append(res, StringSlice(raw)...)
	}
	return res
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Substring returns a LIKE/ILIKE pattern matching value literally anywhere
// in the column.
func Substring(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
