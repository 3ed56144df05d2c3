package repository

import (
	"context"
	"fmt"
	"time"

	"milkline/internal/core"
	client "milkline/internal/database/client"
	"milkline/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ConsumerRepository struct {
	collection *mongo.Collection
}

func NewConsumerRepository(mongoClient *client.MongoClient) *ConsumerRepository {
	repository := &ConsumerRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBMilkline)).Collection(string(core.MongoCollectionConsumers)),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.ConsumerIndexes)
	return repository
}

func (repository *ConsumerRepository) Create(ctx context.Context, consumer *model.Consumer) (*model.Consumer, error) {
	now := time.Now().UTC()
	if consumer.ID.IsZero() {
		consumer.ID = primitive.NewObjectID()
	}
	consumer.CreatedAt = now
	consumer.UpdatedAt = now

	result, err := repository.collection.InsertOne(ctx, consumer)
	if err != nil {
		return nil, err
	}
	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", result.InsertedID)
	}
	consumer.ID = objectID
	return consumer, nil
}

func (repository *ConsumerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Consumer, error) {
	var consumer model.Consumer
	if err := repository.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&consumer); err != nil {
		return nil, err
	}
	return &consumer, nil
}

func (repository *ConsumerRepository) List(ctx context.Context, opts core.ListOptions) ([]*model.Consumer, error) {
	cursor, err := repository.collection.Find(ctx, opts.Filter, findOptions(opts))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.Consumer
	for cursor.Next(ctx) {
		var consumer model.Consumer
		if err := cursor.Decode(&consumer); err != nil {
			return nil, err
		}
		results = append(results, &consumer)
	}
	return results, cursor.Err()
}

func (repository *ConsumerRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return repository.collection.CountDocuments(ctx, filter)
}

func (repository *ConsumerRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error) {
	result, err := repository.collection.UpdateOne(ctx, bson.M{"_id": id}, withUpdatedAt(update))
	if err != nil {
		return 0, err
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

func (repository *ConsumerRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := repository.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DistinctAreas 取得所有不重複的區域名稱
func (repository *ConsumerRepository) DistinctAreas(ctx context.Context) ([]string, error) {
	values, err := repository.collection.Distinct(ctx, "area", bson.M{})
	if err != nil {
		return nil, err
	}
	areas := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			areas = append(areas, s)
		}
	}
	return areas, nil
}
