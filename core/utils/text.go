package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// LikeEscape is the escape character used by EscapeLike.
// A bang works on both SQLite and MySQL without backslash quoting rules.
const LikeEscape = "!"

// ContainsFold reports whether substr is within s, ignoring Unicode case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// EscapeLike escapes LIKE wildcards so the value matches literally.
// Use it together with "ESCAPE '!'".
func EscapeLike(s string) string {
	r := strings.NewReplacer(
		LikeEscape, LikeEscape+LikeEscape,
		"%", LikeEscape+"%",
		"_", LikeEscape+"_",
	)
	return r.Replace(s)
}

// ContainsPattern builds a lower-cased "%fragment%" LIKE pattern.
func ContainsPattern(fragment string) string {
	return "%" + EscapeLike(strings.ToLower(fragment)) + "%"
}

// ParseID converts user or file input to an entity id.
// Unlike a lenient conversion it reports malformed and negative input.
func ParseID(val string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", val)
	}
	if id < 0 {
		return 0, fmt.Errorf("negative id: %d", id)
	}
	return id, nil
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
