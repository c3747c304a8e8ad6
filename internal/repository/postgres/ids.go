// Package postgres holds helpers shared by the gorm repositories.
package postgres

import "github.com/google/uuid"

// ValidIDs reports whether every id is a UUID. Key columns are uuid typed, so
// any other string can only be a miss and must not reach the database.
func ValidIDs(ids ...string) bool {
	for _, id := range ids {
		if uuid.Validate(id) != nil {
			return false
		}
	}
	return true
}
