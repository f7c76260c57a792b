package dto

import (
	"github.com/loopyard/loyalty_backend/internal/core/domain"
)

// CreateVenueRequest defines the payload for registering a venue.
type CreateVenueRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

// VenueResponse defines the data returned for a venue.
type VenueResponse struct {
	VenueID     string `json:"venueID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	IsActive    bool   `json:"isActive"`
}

// ToVenueResponse converts a domain.Venue to a VenueResponse DTO.
func ToVenueResponse(v *domain.Venue) VenueResponse {
	return VenueResponse{
		VenueID:     v.VenueID,
		Name:        v.Name,
		Description: v.Description,
		Address:     v.Address,
		Phone:       v.Phone,
		IsActive:    v.IsActive,
	}
}

// ToVenueResponses converts a slice of domain.Venue to []VenueResponse.
func ToVenueResponses(venues []domain.Venue) []VenueResponse {
	responses := make([]VenueResponse, len(venues))
	for i, v := range venues {
		responses[i] = ToVenueResponse(&v)
	}
	return responses
}
