package models

// TravelerProfile is the slice of the profile service's read model the
// planner needs: the profile id referenced by generation requests.
type TravelerProfile struct {
	ID     int    `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
}
