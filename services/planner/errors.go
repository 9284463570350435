package planner

import "errors"

// ErrSessionNotFound is returned when a planning session does not exist, was
// cancelled, or has expired.
var ErrSessionNotFound = errors.New("planning session not found or expired")

// Refusal reasons with a distinguished recovery path.
const (
	// ReasonNotSignedIn: the caller has no identity; submission never starts.
	ReasonNotSignedIn = "not signed in"
	// ReasonMissingProfile: the user must create a travel profile before an
	// itinerary can be generated; retrying submit will not help.
	ReasonMissingProfile = "missing profile"
)
