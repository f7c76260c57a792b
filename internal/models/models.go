// Package models contains the database-layer representations of the domain
// types. Repositories scan rows into these and convert to domain types at
// the boundary.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields contains common audit columns shared by mutable tables.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}

// User maps to the users table.
type User struct {
	UserID        string
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Role          string
	PointsBalance int64
	IsActive      bool
	AuditFields
	DeletedAt *time.Time
}

// Venue maps to the venues table.
type Venue struct {
	VenueID     string
	Name        string
	Description string
	Address     string
	Phone       string
	OwnerUserID string
	IsActive    bool
	AuditFields
}

// Code maps to the codes table.
type Code struct {
	CodeID       string
	Code         string
	VenueID      string
	IssuerUserID string
	Amount       decimal.Decimal
	ExpiresAt    time.Time
	Used         bool
	UsedAt       *time.Time
	UsedByUserID *string
	CreatedAt    time.Time
}

// LedgerEntry maps to the ledger_entries table.
type LedgerEntry struct {
	EntryID     string
	UserID      string
	VenueID     string
	Amount      decimal.Decimal
	PointsDelta int64
	Kind        string
	Description string
	CreatedAt   time.Time
}

// Reward maps to the rewards table.
type Reward struct {
	RewardID    string
	VenueID     string
	Name        string
	Description string
	PointsCost  int64
	IsActive    bool
	AuditFields
}

// Redemption maps to the redemptions table.
type Redemption struct {
	RedemptionID string
	EntryID      string
	RewardID     string
	CreatedAt    time.Time
}
