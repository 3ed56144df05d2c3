package repository

import (
	"context"
	"errors"
	"time"

	"milkline/internal/core"
	client "milkline/internal/database/client"
	"milkline/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SystemSettingsRepository struct {
	collection *mongo.Collection
}

func NewSystemSettingsRepository(mongoClient *client.MongoClient) *SystemSettingsRepository {
	return &SystemSettingsRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBMilkline)).Collection(string(core.MongoCollectionSystemSettings)),
	}
}

// Get 取得單例設定；不存在時以預設值建立後回傳
func (repository *SystemSettingsRepository) Get(ctx context.Context) (*model.SystemSettings, error) {
	var settings model.SystemSettings
	err := repository.collection.FindOne(ctx, bson.M{}).Decode(&settings)
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	now := time.Now().UTC()
	settings = model.SystemSettings{
		ID:              primitive.NewObjectID(),
		DefaultMilkRate: model.DefaultMilkRate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := repository.collection.InsertOne(ctx, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (repository *SystemSettingsRepository) Update(ctx context.Context, update bson.M) (*model.SystemSettings, error) {
	if _, err := repository.Get(ctx); err != nil {
		return nil, err
	}
	if _, err := repository.collection.UpdateOne(ctx, bson.M{}, withUpdatedAt(bson.M{"$set": update})); err != nil {
		return nil, err
	}
	return repository.Get(ctx)
}
