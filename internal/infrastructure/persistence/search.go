package persistence

import "strings"

// likeEscaper neutralises LIKE wildcards in user search text. Queries using
// it must declare ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring pattern for
// LOWER(col) LIKE ? ESCAPE '\'
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}
