package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// userDocument is the users collection shape
type userDocument struct {
	ID        string     `bson:"_id"`
	Email     string     `bson:"email"`
	OTP       *string    `bson:"otp,omitempty"`
	OTPExpiry *time.Time `bson:"otpExpiry,omitempty"`
	CreatedAt time.Time  `bson:"createdAt"`
}

// MongoStore keeps users in a MongoDB collection
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}
	return nil
}

func (s *MongoStore) Create(ctx context.Context, email string) (*User, error) {
	doc := userDocument{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return doc.toModel()
}

func (s *MongoStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoStore) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()})
}

func (s *MongoStore) SetLoginCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	update := bson.M{"$set": bson.M{"otp": code, "otpExpiry": expiresAt.UTC()}}
	return s.updateOne(ctx, id, update)
}

func (s *MongoStore) ClearLoginCode(ctx context.Context, id uuid.UUID) error {
	update := bson.M{"$unset": bson.M{"otp": "", "otpExpiry": ""}}
	return s.updateOne(ctx, id, update)
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var doc userDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return doc.toModel()
}

func (s *MongoStore) updateOne(ctx context.Context, id uuid.UUID, update bson.M) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (d userDocument) toModel() (*User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", d.ID, err)
	}
	return &User{
		ID:           id,
		Email:        d.Email,
		OTP:          d.OTP,
		OTPExpiresAt: d.OTPExpiry,
		CreatedAt:    d.CreatedAt,
	}, nil
}
