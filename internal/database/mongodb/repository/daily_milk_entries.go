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

type DailyMilkEntryRepository struct {
	collection *mongo.Collection
}

func NewDailyMilkEntryRepository(mongoClient *client.MongoClient) *DailyMilkEntryRepository {
	repository := &DailyMilkEntryRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBMilkline)).Collection(string(core.MongoCollectionDailyMilkEntries)),
	}
	_, _ = repository.collection.Indexes().CreateMany(context.Background(), model.DailyMilkEntryIndexes)
	return repository
}

func (repository *DailyMilkEntryRepository) Create(ctx context.Context, entry *model.DailyMilkEntry) (*model.DailyMilkEntry, error) {
	now := time.Now().UTC()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now

	result, err := repository.collection.InsertOne(ctx, entry)
	if err != nil {
		return nil, err
	}
	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", result.InsertedID)
	}
	entry.ID = objectID
	return entry, nil
}

func (repository *DailyMilkEntryRepository) GetByDate(ctx context.Context, date time.Time) (*model.DailyMilkEntry, error) {
	var entry model.DailyMilkEntry
	if err := repository.collection.FindOne(ctx, bson.M{"entryDate": date}).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (repository *DailyMilkEntryRepository) List(ctx context.Context, opts core.ListOptions) ([]*model.DailyMilkEntry, error) {
	cursor, err := repository.collection.Find(ctx, opts.Filter, findOptions(opts))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.DailyMilkEntry
	for cursor.Next(ctx) {
		var entry model.DailyMilkEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, err
		}
		results = append(results, &entry)
	}
	return results, cursor.Err()
}

func (repository *DailyMilkEntryRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return repository.collection.CountDocuments(ctx, filter)
}

// ConsumeAllocation 條件式單次更新：僅當該配送員份額的 remainingQuantity >= quantity
// 時才遞減 remaining / 遞增 delivered。回傳 false 表示條件不成立（配額不足，或
// 併發下已被他人扣走）。以此取代 read-modify-write，避免同配送員同日的競態超扣
func (repository *DailyMilkEntryRepository) ConsumeAllocation(ctx context.Context, date time.Time, employeeID primitive.ObjectID, quantity float64) (bool, error) {
	filter := bson.M{
		"entryDate": date,
		"employeeAllocations": bson.M{
			"$elemMatch": bson.M{
				"employeeId":        employeeID,
				"remainingQuantity": bson.M{"$gte": quantity},
			},
		},
	}
	update := withUpdatedAt(bson.M{
		"$inc": bson.M{
			"employeeAllocations.$.deliveredQuantity": quantity,
			"employeeAllocations.$.remainingQuantity": -quantity,
		},
	})
	result, err := repository.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// RestoreAllocation 回補份額，配送寫入失敗時沖銷先前的 ConsumeAllocation
func (repository *DailyMilkEntryRepository) RestoreAllocation(ctx context.Context, date time.Time, employeeID primitive.ObjectID, quantity float64) error {
	filter := bson.M{
		"entryDate":                      date,
		"employeeAllocations.employeeId": employeeID,
	}
	update := withUpdatedAt(bson.M{
		"$inc": bson.M{
			"employeeAllocations.$.deliveredQuantity": -quantity,
			"employeeAllocations.$.remainingQuantity": quantity,
		},
	})
	_, err := repository.collection.UpdateOne(ctx, filter, update)
	return err
}

// MarkVerified 核銷指定日期 / 配送員的份額；找不到回傳 mongo.ErrNoDocuments
func (repository *DailyMilkEntryRepository) MarkVerified(ctx context.Context, date time.Time, employeeID primitive.ObjectID, at time.Time) error {
	filter := bson.M{
		"entryDate":                      date,
		"employeeAllocations.employeeId": employeeID,
	}
	update := withUpdatedAt(bson.M{
		"$set": bson.M{
			"employeeAllocations.$.isVerified": true,
			"employeeAllocations.$.verifiedAt": at,
		},
	})
	result, err := repository.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
