package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activitiesCollection = "activities"

type activityDocument struct {
	ID           string    `bson:"_id"`
	UserID       string    `bson:"userId"`
	ActivityType string    `bson:"activity_type"`
	Amount       float64   `bson:"amount"`
	Unit         string    `bson:"unit"`
	Emission     float64   `bson:"emission"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// MongoStore keeps activities in a MongoDB collection
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(activitiesCollection)}
}

// EnsureIndexes creates the per-user timeline index
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create activities index: %w", err)
	}
	return nil
}

func (s *MongoStore) Create(ctx context.Context, a *Activity) error {
	doc := activityDocument{
		ID:           a.ID.String(),
		UserID:       a.UserID.String(),
		ActivityType: a.ActivityType,
		Amount:       a.Amount,
		Unit:         a.Unit,
		Emission:     a.Emission,
		CreatedAt:    a.CreatedAt,
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (s *MongoStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	var docs []activityDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}

	out := make([]Activity, 0, len(docs))
	for _, d := range docs {
		a, err := d.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (d activityDocument) toModel() (Activity, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return Activity{}, fmt.Errorf("invalid activity id %q: %w", d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return Activity{}, fmt.Errorf("invalid user id %q: %w", d.UserID, err)
	}

	return Activity{
		ID:           id,
		UserID:       userID,
		ActivityType: d.ActivityType,
		Amount:       d.Amount,
		Unit:         d.Unit,
		Emission:     d.Emission,
		CreatedAt:    d.CreatedAt,
	}, nil
}
