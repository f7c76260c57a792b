package domain

// Venue is the issuing and validating party associated with codes and
// rewards. Each venue is owned by a single issuer user.
type Venue struct {
	VenueID     string `json:"venueID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	OwnerUserID string `json:"ownerUserID"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// IsOwnedBy reports whether the given user owns this venue.
func (v *Venue) IsOwnedBy(userID string) bool {
	return v.OwnerUserID == userID
}
