// Package role defines the group role hierarchy: owner > admin > member.
package role

import (
	"strings"

	"pantry-app-go/internal/domain/apperr"
)

type Role string

const (
	Owner  Role = "owner"
	Admin  Role = "admin"
	Member Role = "member"
)

var ErrInvalidRole = apperr.Validation("invalid_role", "Invalid role for user.")

// ranks: lower value means more authority.
var ranks = map[Role]int{
	Owner:  0,
	Admin:  1,
	Member: 2,
}

// All returns the roles from most to least authority.
func All() []Role {
	return []Role{Owner, Admin, Member}
}

// Parse accepts a role name, case-insensitively and ignoring surrounding spaces.
func Parse(value string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(value)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := ranks[r]
	return ok
}

func (r Role) Rank() (int, error) {
	rank, ok := ranks[r]
	if !ok {
		return 0, ErrInvalidRole
	}
	return rank, nil
}

// IsHigherThan reports whether r carries strictly more authority than other.
// It is false whenever either role is unknown.
func (r Role) IsHigherThan(other Role) bool {
	a, err := r.Rank()
	if err != nil {
		return false
	}
	b, err := other.Rank()
	if err != nil {
		return false
	}
	return a < b
}

func (r Role) String() string {
	return string(r)
}
