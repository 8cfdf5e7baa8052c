package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studyvault/internal/model"
	"studyvault/internal/repository"
)

const resourcesCollection = "resources"

// ResourceMongo is a MongoDB implementation of repository.ResourceRepository.
// Counter mutations go through $inc so concurrent increments from different
// clients never lose an update.
type ResourceMongo struct {
	coll *mongo.Collection
}

// NewResourceMongo creates a new ResourceMongo repository.
func NewResourceMongo(db *mongo.Database) *ResourceMongo {
	return &ResourceMongo{coll: db.Collection(resourcesCollection)}
}

var _ repository.ResourceRepository = (*ResourceMongo)(nil)

// Create inserts a new resource document and returns the stored record with
// its store-assigned id. Counters start at zero by construction.
func (r *ResourceMongo) Create(ctx context.Context, res *model.Resource) (*model.Resource, error) {
	out := *res
	out.ID = primitive.NewObjectID().Hex()
	out.DownloadCount = 0
	out.ReadCount = 0
	if _, err := r.coll.InsertOne(ctx, &out); err != nil {
		return nil, fmt.Errorf("insert resource: %w", err)
	}
	return &out, nil
}

// IncrementCounter applies a server-side atomic $inc; never read-modify-write.
func (r *ResourceMongo) IncrementCounter(ctx context.Context, id string, counter repository.Counter) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{string(counter): 1}},
	)
	if err != nil {
		return fmt.Errorf("increment %s: %w", counter, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Search combines all provided filters with exact-match AND semantics,
// ordered by creation time descending.
func (r *ResourceMongo) Search(ctx context.Context, f repository.ResourceFilter) ([]model.Resource, error) {
	filter := bson.M{}
	if f.College != "" {
		filter["college"] = f.College
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Course != "" {
		filter["course"] = f.Course
	}
	if f.Semester != "" {
		filter["semester"] = f.Semester
	}
	if f.Subject != "" {
		filter["subject"] = f.Subject
	}
	return r.find(ctx, filter)
}

// ListByUploader returns one user's uploads, newest first.
func (r *ResourceMongo) ListByUploader(ctx context.Context, uploaderID string) ([]model.Resource, error) {
	return r.find(ctx, bson.M{"uploader_id": uploaderID})
}

func (r *ResourceMongo) find(ctx context.Context, filter bson.M) ([]model.Resource, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find resources: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]model.Resource, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode resources: %w", err)
	}
	return items, nil
}
