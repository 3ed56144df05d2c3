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

type AssignmentRepository struct {
	collection *mongo.Collection
}

func NewAssignmentRepository(mongoClient *client.MongoClient) *AssignmentRepository {
	repository := &AssignmentRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBMilkline)).Collection(string(core.MongoCollectionAssignments)),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.AssignmentIndexes)
	return repository
}

func (repository *AssignmentRepository) Create(ctx context.Context, assignment *model.Assignment) (*model.Assignment, error) {
	now := time.Now().UTC()
	if assignment.ID.IsZero() {
		assignment.ID = primitive.NewObjectID()
	}
	if assignment.AssignedDate.IsZero() {
		assignment.AssignedDate = now
	}
	assignment.CreatedAt = now
	assignment.UpdatedAt = now

	result, err := repository.collection.InsertOne(ctx, assignment)
	if err != nil {
		return nil, err
	}
	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", result.InsertedID)
	}
	assignment.ID = objectID
	return assignment, nil
}

func (repository *AssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := repository.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindPair 取得 (employeeId, consumerId) 的既有列，無論啟用與否；
// 唯一鍵保證至多一列
func (repository *AssignmentRepository) FindPair(ctx context.Context, employeeID, consumerID primitive.ObjectID) (*model.Assignment, error) {
	var assignment model.Assignment
	err := repository.collection.FindOne(ctx, bson.M{
		"employeeId": employeeID,
		"consumerId": consumerID,
	}).Decode(&assignment)
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindActivePair 配送授權查核用：該配送員對該訂奶戶是否有作用中的指派
func (repository *AssignmentRepository) FindActivePair(ctx context.Context, employeeID, consumerID primitive.ObjectID) (*model.Assignment, error) {
	var assignment model.Assignment
	err := repository.collection.FindOne(ctx, bson.M{
		"employeeId": employeeID,
		"consumerId": consumerID,
		"isActive":   true,
	}).Decode(&assignment)
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (repository *AssignmentRepository) List(ctx context.Context, opts core.ListOptions) ([]*model.Assignment, error) {
	cursor, err := repository.collection.Find(ctx, opts.Filter, findOptions(opts))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.Assignment
	for cursor.Next(ctx) {
		var assignment model.Assignment
		if err := cursor.Decode(&assignment); err != nil {
			return nil, err
		}
		results = append(results, &assignment)
	}
	return results, cursor.Err()
}

func (repository *AssignmentRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return repository.collection.CountDocuments(ctx, filter)
}

func (repository *AssignmentRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error) {
	result, err := repository.collection.UpdateOne(ctx, bson.M{"_id": id}, withUpdatedAt(update))
	if err != nil {
		return 0, err
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

func (repository *AssignmentRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := repository.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
