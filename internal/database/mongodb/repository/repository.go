package repository

import (
	"milkline/internal/core"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewAdminRepository,
	NewEmployeeRepository,
	NewConsumerRepository,
	NewAssignmentRepository,
	NewDailyMilkEntryRepository,
	NewDailyDeliveryRepository,
	NewSystemSettingsRepository)

func withUpdatedAt(update bson.M) bson.M {
	currentDate, ok := update["$currentDate"].(bson.M)
	if !ok || currentDate == nil {
		currentDate = bson.M{}
	}
	currentDate["updatedAt"] = true
	update["$currentDate"] = currentDate
	return update
}

// findOptions 將 ListOptions 轉為 mongo 查詢選項（page 從 1 起算）
func findOptions(opts core.ListOptions) *options.FindOptions {
	fo := options.Find()
	if opts.Limit > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		fo.SetSkip((page - 1) * opts.Limit)
		fo.SetLimit(opts.Limit)
	}
	if len(opts.Sort) > 0 {
		fo.SetSort(opts.Sort)
	}
	return fo
}
