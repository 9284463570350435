package waypointRepo

import (
	"errors"

	"voyago/models"
)

// ErrSearchUnavailable wraps transient datastore trouble during a type-ahead
// lookup. Zero matches is never an error; that is an empty result.
var ErrSearchUnavailable = errors.New("waypoint search unavailable")

// WaypointRepository defines read access to the waypoint catalogue.
type WaypointRepository interface {
	// Search returns up to limit waypoints in the destination whose name
	// matches the query, best rated first.
	Search(destinationID int, query string, limit int) ([]models.WaypointRef, error)
}
