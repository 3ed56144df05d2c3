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

type EmployeeRepository struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(mongoClient *client.MongoClient) *EmployeeRepository {
	repository := &EmployeeRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBMilkline)).Collection(string(core.MongoCollectionEmployees)),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.EmployeeIndexes)
	return repository
}

func (repository *EmployeeRepository) Create(ctx context.Context, employee *model.Employee) (*model.Employee, error) {
	now := time.Now().UTC()
	if employee.ID.IsZero() {
		employee.ID = primitive.NewObjectID()
	}
	employee.CreatedAt = now
	employee.UpdatedAt = now

	result, err := repository.collection.InsertOne(ctx, employee)
	if err != nil {
		return nil, err
	}
	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", result.InsertedID)
	}
	employee.ID = objectID
	return employee, nil
}

func (repository *EmployeeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Employee, error) {
	var employee model.Employee
	if err := repository.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (repository *EmployeeRepository) GetByMobile(ctx context.Context, mobileNumber string) (*model.Employee, error) {
	var employee model.Employee
	if err := repository.collection.FindOne(ctx, bson.M{"mobileNumber": mobileNumber}).Decode(&employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (repository *EmployeeRepository) List(ctx context.Context, opts core.ListOptions) ([]*model.Employee, error) {
	cursor, err := repository.collection.Find(ctx, opts.Filter, findOptions(opts))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.Employee
	for cursor.Next(ctx) {
		var employee model.Employee
		if err := cursor.Decode(&employee); err != nil {
			return nil, err
		}
		results = append(results, &employee)
	}
	return results, cursor.Err()
}

func (repository *EmployeeRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return repository.collection.CountDocuments(ctx, filter)
}

func (repository *EmployeeRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error) {
	result, err := repository.collection.UpdateOne(ctx, bson.M{"_id": id}, withUpdatedAt(update))
	if err != nil {
		return 0, err
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

func (repository *EmployeeRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := repository.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
