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

type AdminRepository struct {
	collection *mongo.Collection
}

func NewAdminRepository(mongoClient *client.MongoClient) *AdminRepository {
	repository := &AdminRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBMilkline)).Collection(string(core.MongoCollectionAdmins)),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.AdminIndexes)
	return repository
}

func (repository *AdminRepository) Create(ctx context.Context, admin *model.Admin) (*model.Admin, error) {
	now := time.Now().UTC()
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	admin.CreatedAt = now
	admin.UpdatedAt = now

	result, err := repository.collection.InsertOne(ctx, admin)
	if err != nil {
		return nil, err
	}
	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", result.InsertedID)
	}
	admin.ID = objectID
	return admin, nil
}

func (repository *AdminRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Admin, error) {
	var admin model.Admin
	if err := repository.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetByLogin username 或 email 皆可登入
func (repository *AdminRepository) GetByLogin(ctx context.Context, login string) (*model.Admin, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": login},
		bson.M{"email": login},
	}}
	var admin model.Admin
	if err := repository.collection.FindOne(ctx, filter).Decode(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (repository *AdminRepository) Count(ctx context.Context) (int64, error) {
	return repository.collection.CountDocuments(ctx, bson.M{})
}
