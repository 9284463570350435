package destinationRepo

import (
	"errors"

	"voyago/models"
)

// ErrNotFound is returned when a destination does not exist in the catalogue.
var ErrNotFound = errors.New("destination not found")

// DestinationRepository defines read access to the destination catalogue.
type DestinationRepository interface {
	// GetByID retrieves a destination by its unique ID. Returns ErrNotFound
	// when the ID is unknown.
	GetByID(id int) (*models.Destination, error)
}
