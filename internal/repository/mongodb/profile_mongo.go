package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"studyvault/internal/repository"
)

const usersCollection = "users"

// ProfileMongo reads user profiles from the users collection maintained by
// the identity side of the product. The core only reads the display name.
type ProfileMongo struct {
	coll *mongo.Collection
}

func NewProfileMongo(db *mongo.Database) *ProfileMongo {
	return &ProfileMongo{coll: db.Collection(usersCollection)}
}

var _ repository.ProfileRepository = (*ProfileMongo)(nil)

func (p *ProfileMongo) DisplayName(ctx context.Context, userID string) (string, error) {
	var doc struct {
		Name string `bson:"name"`
	}
	err := p.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", fmt.Errorf("find user %s: %w", userID, err)
	}
	return doc.Name, nil
}
