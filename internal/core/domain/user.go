package domain

import "time"

// Role is the closed set of roles the portal knows about. Tokens minted by
// this service only ever carry one of these; anything else renders as an
// empty navigation list rather than an error.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// User models an account in the portal. ShopNames is the ordered list of
// shops the account registered with; order is preserved everywhere it is
// rendered.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ShopNames    []string  `json:"shopNames"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// OwnsShop reports whether name is one of the user's shops.
func (u *User) OwnsShop(name string) bool {
	for _, s := range u.ShopNames {
		if s == name {
			return true
		}
	}
	return false
}
