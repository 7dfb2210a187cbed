// Package repository handles all interactions with the database.
//
// It contains the GORM queries that fetch, persist or update data,
// keeping query building away from the service layer.
//
// Conventions shared by every repository here:
//   - a lookup that finds nothing returns (nil, nil), not an error
//   - Update returns (nil, nil) when the row does not exist
//   - Delete returns (false, nil) when the row does not exist
//
// The service layer turns those sentinels into 404 responses.
package repository

import "strings"

// likeEscaper escapes the LIKE wildcards so user input always matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into a LIKE pattern matching any value containing s.
// Use it together with `ESCAPE '\'`.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// byID is the where clause used for primary key lookups.
const byID = "id = ?"
