package domain

import "time"

// UserRole distinguishes the two kinds of principals the system serves:
// earners collect points by presenting codes, issuers operate a venue and
// validate them.
type UserRole string

const (
	RoleEarner UserRole = "EARNER"
	RoleIssuer UserRole = "ISSUER"
)

// User represents a registered principal. PointsBalance is a cached value
// mutated only through ledger-posting operations; the ledger remains the
// source of truth.
type User struct {
	UserID        string   `json:"userID"`
	Email         string   `json:"email"`
	PasswordHash  string   `json:"-"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Role          UserRole `json:"role"`
	PointsBalance int64    `json:"pointsBalance"`
	IsActive      bool     `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// FullName returns a display name, falling back to the email address.
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Email
}

// IsEarner reports whether the user may generate codes and redeem rewards.
func (u *User) IsEarner() bool {
	return u.Role == RoleEarner
}

// IsIssuer reports whether the user may operate a venue and validate codes.
func (u *User) IsIssuer() bool {
	return u.Role == RoleIssuer
}
