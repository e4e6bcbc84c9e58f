package domain

import "time"

// Closed role enumeration. Roles are reference rows seeded at startup and
// never deleted.
const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
	RoleAdmin     = "ADMIN"
)

// Role is a reference row in the roles collection.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User models a bank system account that can authenticate. Accounts are
// created at signup and never mutated afterwards; the account (not the token)
// is the source of truth for current roles.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated identity established for the duration of a
// single request. It is carried explicitly through the request pipeline and
// discarded when the request ends.
type Principal struct {
	Username string
	Roles    []string
}

// HasAnyRole reports whether the principal holds at least one of the given roles.
func (p Principal) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range p.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
