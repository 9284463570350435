package waypointRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"voyago/database"
	"voyago/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// waypointDoc is the stored shape; Rating and DestinationID only matter for
// querying and ordering, the planner sees WaypointRef.
type waypointDoc struct {
	ID            int     `bson:"_id"`
	Name          string  `bson:"name"`
	Category      string  `bson:"category"`
	DestinationID int     `bson:"destinationId"`
	Rating        float64 `bson:"rating"`
}

// MongoWaypointRepo implements WaypointRepository using MongoDB.
type MongoWaypointRepo struct {
	coll *mongo.Collection
}

// NewMongoWaypointRepo creates a new instance of WaypointRepository using MongoDB.
func NewMongoWaypointRepo() WaypointRepository {
	coll := database.MongoClient.Database("voyago").Collection("waypoints")
	repo := &MongoWaypointRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoWaypointRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "destinationId", Value: 1}, {Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "destinationId", Value: 1}, {Key: "rating", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Search returns up to limit waypoints in the destination whose name matches
// the query (case-insensitive substring), best rated first, ties by name.
func (r *MongoWaypointRepo) Search(destinationID int, query string, limit int) ([]models.WaypointRef, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"destinationId": destinationID,
		"name":          bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "name", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	defer cursor.Close(ctx)

	var docs []waypointDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}

	refs := make([]models.WaypointRef, 0, len(docs))
	for _, d := range docs {
		refs = append(refs, models.WaypointRef{ID: d.ID, Name: d.Name, Category: d.Category})
	}
	return refs, nil
}
