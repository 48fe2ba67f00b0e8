package store

import (
	"context"

	"civicconnect-be/models"
	"civicconnect-be/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoIssueStore backs IssueStore with a MongoDB collection.
type MongoIssueStore struct {
	collection *mongo.Collection
}

func NewMongoIssueStore(collection *mongo.Collection) *MongoIssueStore {
	return &MongoIssueStore{collection: collection}
}

func (s *MongoIssueStore) Find(ctx context.Context, p query.Predicate, sort Sort, skip, limit int64) ([]models.Issue, error) {
	order := 1
	if sort.Descending {
		order = -1
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: sort.Field, Value: order}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.collection.Find(ctx, query.ToBSON(p), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (s *MongoIssueStore) Count(ctx context.Context, p query.Predicate) (int64, error) {
	return s.collection.CountDocuments(ctx, query.ToBSON(p))
}

func (s *MongoIssueStore) IDs(ctx context.Context, p query.Predicate) ([]primitive.ObjectID, error) {
	findOptions := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := s.collection.Find(ctx, query.ToBSON(p), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

func (s *MongoIssueStore) DeleteMany(ctx context.Context, p query.Predicate) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, query.ToBSON(p))
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
