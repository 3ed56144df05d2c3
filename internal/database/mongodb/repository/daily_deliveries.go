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

type DailyDeliveryRepository struct {
	collection *mongo.Collection
}

func NewDailyDeliveryRepository(mongoClient *client.MongoClient) *DailyDeliveryRepository {
	repository := &DailyDeliveryRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBMilkline)).Collection(string(core.MongoCollectionDailyDeliveries)),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.DailyDeliveryIndexes)
	return repository
}

func (repository *DailyDeliveryRepository) Create(ctx context.Context, delivery *model.DailyDelivery) (*model.DailyDelivery, error) {
	if delivery.ID.IsZero() {
		delivery.ID = primitive.NewObjectID()
	}
	if delivery.RecordedAt.IsZero() {
		delivery.RecordedAt = time.Now().UTC()
	}

	result, err := repository.collection.InsertOne(ctx, delivery)
	if err != nil {
		return nil, err
	}
	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", result.InsertedID)
	}
	delivery.ID = objectID
	return delivery, nil
}

func (repository *DailyDeliveryRepository) FindByConsumerAndDate(ctx context.Context, consumerID primitive.ObjectID, date time.Time) (*model.DailyDelivery, error) {
	var delivery model.DailyDelivery
	filter := bson.M{"consumerId": consumerID, "deliveryDate": date}
	if err := repository.collection.FindOne(ctx, filter).Decode(&delivery); err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (repository *DailyDeliveryRepository) List(ctx context.Context, opts core.ListOptions) ([]*model.DailyDelivery, error) {
	cursor, err := repository.collection.Find(ctx, opts.Filter, findOptions(opts))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.DailyDelivery
	for cursor.Next(ctx) {
		var delivery model.DailyDelivery
		if err := cursor.Decode(&delivery); err != nil {
			return nil, err
		}
		results = append(results, &delivery)
	}
	return results, cursor.Err()
}

func (repository *DailyDeliveryRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return repository.collection.CountDocuments(ctx, filter)
}

// FindRange 取出日期區間內全部配送紀錄（帳務彙總用，不分頁）
func (repository *DailyDeliveryRepository) FindRange(ctx context.Context, filter bson.M) ([]*model.DailyDelivery, error) {
	cursor, err := repository.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.DailyDelivery
	for cursor.Next(ctx) {
		var delivery model.DailyDelivery
		if err := cursor.Decode(&delivery); err != nil {
			return nil, err
		}
		results = append(results, &delivery)
	}
	return results, cursor.Err()
}
