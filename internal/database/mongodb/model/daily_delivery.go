package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DailyDelivery 單筆配送記錄，建立後不可變（API 不提供更新/刪除）。
// (consumerId, deliveryDate) 唯一鍵是併發下唯一由儲存層保證的防線。
// RatePerLiter 為記錄當下的消費者費率快照，snapshot 計費模式使用
type DailyDelivery struct {
	ID                primitive.ObjectID `json:"id" bson:"_id"`
	ConsumerID        primitive.ObjectID `json:"consumerId" bson:"consumerId"`
	EmployeeID        primitive.ObjectID `json:"employeeId" bson:"employeeId"`
	DeliveryDate      time.Time          `json:"deliveryDate" bson:"deliveryDate"`
	QuantityDelivered float64            `json:"quantityDelivered" bson:"quantityDelivered"`
	RatePerLiter      float64            `json:"ratePerLiter" bson:"ratePerLiter"`
	RecordedAt        time.Time          `json:"recordedAt" bson:"recordedAt"`
}

var DailyDeliveryIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "consumerId", Value: 1}, {Key: "deliveryDate", Value: 1}},
		Options: options.Index().SetName("uniq_consumerId_deliveryDate").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "deliveryDate", Value: -1}},
		Options: options.Index().SetName("idx_employeeId_deliveryDate"),
	},
	{
		Keys:    bson.D{{Key: "deliveryDate", Value: -1}},
		Options: options.Index().SetName("idx_deliveryDate_desc"),
	},
}
