package models

// GenerationRequest is the payload posted to the itinerary-generation
// service. Field names follow that service's wire contract. CityCenterID is
// always the destination's canonical center; HotelID carries the selected
// starting waypoint when one was chosen, and the generator anchors on it,
// falling back to the center otherwise.
type GenerationRequest struct {
	UserProfileID    int     `json:"user_profile_id"`
	CityCenterID     int     `json:"city_center_id"`
	HotelID          *int    `json:"hotel_id,omitempty"`
	NumDays          int     `json:"num_days"`
	StartDate        string  `json:"start_date"`
	OptimizationMode string  `json:"optimization_mode"`
	MaxRadiusKm      float64 `json:"max_radius_km"`
	MaxCandidates    int     `json:"max_candidates"`
}

// GenerationResult is the generator's success response.
type GenerationResult struct {
	ItineraryID int `json:"itinerary_id"`
}
