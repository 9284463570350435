package models

// Waypoint categories as stored in the catalogue.
const (
	WaypointCategoryHotel      = "hotel"
	WaypointCategoryAttraction = "attraction"
)

// WaypointRef is an immutable reference to a named point of interest (hotel or
// attraction) usable as a trip's starting point. Instances are owned by
// whichever candidates slice or starting-point slot holds them and are never
// mutated in place.
type WaypointRef struct {
	ID       int    `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Category string `json:"category" bson:"category"`
}

// Destination is a bookable trip destination from the catalogue.
type Destination struct {
	ID                int    `json:"id" bson:"_id"`
	Name              string `json:"name" bson:"name"`
	Country           string `json:"country" bson:"country"`
	CanonicalCenterID int    `json:"canonicalCenterWaypointId" bson:"canonicalCenterWaypointId"`
}
