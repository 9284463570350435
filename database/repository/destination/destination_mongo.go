package destinationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voyago/database"
	"voyago/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDestinationRepo implements DestinationRepository using MongoDB.
type MongoDestinationRepo struct {
	coll *mongo.Collection
}

// NewMongoDestinationRepo creates a new instance of DestinationRepository using MongoDB.
func NewMongoDestinationRepo() DestinationRepository {
	coll := database.MongoClient.Database("voyago").Collection("destinations")
	return &MongoDestinationRepo{coll: coll}
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetByID retrieves a destination by its unique ID.
func (r *MongoDestinationRepo) GetByID(id int) (*models.Destination, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var dest models.Destination
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&dest); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch destination %d: %w", id, err)
	}
	return &dest, nil
}
