package domain

import "time"

// Role is the dashboard a signed-in account is allowed to use.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleResident Role = "resident"
	RoleStaff    Role = "staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleResident, RoleStaff:
		return true
	}
	return false
}

// CanSelfRegister reports whether r may be requested through public signup.
// Admin accounts are never created by signup.
func (r Role) CanSelfRegister() bool {
	return r == RoleResident || r == RoleStaff
}

// User models an account that is allowed to log in.
type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ApartmentNumber string `json:"apartment_number,omitempty"`
	Role            Role   `json:"role"`
	PasswordHash    string `json:"-"`
}

// PendingUser is a signup request waiting for an admin decision.
type PendingUser struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	ApartmentNumber string    `json:"apartment_number,omitempty"`
	Role            Role      `json:"role"`
	PasswordHash    string    `json:"-"`
	RequestedAt     time.Time `json:"requested_at"`
}

// Approve converts the request into a login-capable account. The stored
// password hash travels with it.
func (p PendingUser) Approve() User {
	return User{
		ID:              p.ID,
		Name:            p.Name,
		Email:           p.Email,
		ApartmentNumber: p.ApartmentNumber,
		Role:            p.Role,
		PasswordHash:    p.PasswordHash,
	}
}

// Session is the single current authentication state of the running client.
type Session struct {
	User          *User     `json:"user"`
	Role          Role      `json:"role,omitempty"`
	Authenticated bool      `json:"authenticated"`
	Loading       bool      `json:"loading"`
	Token         string    `json:"-"`
	ExpiresAt     time.Time `json:"expires_at,omitempty"`
}

// DemoPassword is shared by every demo account.
const DemoPassword = "password123"

// DemoAccounts are the hard-coded accounts usable without signup.
// Order matters: login checks them in this order.
func DemoAccounts() []User {
	return []User{
		{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: RoleAdmin},
		{ID: "2", Name: "John Resident", Email: "resident@example.com", ApartmentNumber: "304", Role: RoleResident},
		{ID: "3", Name: "Staff Member", Email: "staff@example.com", Role: RoleStaff},
	}
}
