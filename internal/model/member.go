package model

// Roles a member can hold.  Reservations are made by USER and ADMIN
// members alike; only ADMIN manages times and themes.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Member is an account that can sign in and book reservations.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name, copied onto reservations.
//  Email        – unique, stored lower-case.
//  PasswordHash – bcrypt hash of the password.
//  Role         – ADMIN or USER.
type Member struct {
	ID           int64  // member.id
	Name         string // member.name
	Email        string // member.email
	PasswordHash string // member.password_hash
	Role         string // member.role
}

// IsAdmin reports whether the member may use administrative endpoints.
func (m Member) IsAdmin() bool { return m.Role == RoleAdmin }
