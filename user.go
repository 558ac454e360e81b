package medichat

import (
	"fmt"
	"strings"
)

// User is an account record as listed by the admin endpoint.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// Manageable reports whether the admin view offers edit and delete actions
// for u. Admin rows are never manageable. This is a display rule only; the
// server enforces the real authorization.
func (u User) Manageable() bool {
	return u.Role != RoleAdmin
}

// EmailOrDash returns the email, or "-" when none is on record.
func (u User) EmailOrDash() string {
	if u.Email == "" {
		return "-"
	}
	return u.Email
}

// UserUpdate is an admin edit of another user. An empty Password is omitted
// so the existing password stays.
type UserUpdate struct {
	FullName string `json:"full_name"`
	Password string `json:"password,omitempty"`
}

// Validate rejects updates that target admin rows or clear the name.
func (upd UserUpdate) Validate(target User) error {
	if !target.Manageable() {
		return fmt.Errorf("user %s is an admin: %w", target.Username, ErrForbidden)
	}
	if strings.TrimSpace(upd.FullName) == "" {
		return invalid("Nama tidak boleh kosong")
	}
	return nil
}
