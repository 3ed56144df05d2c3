package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Assignment 配送授權：哪位配送員負責哪位訂奶戶。
// (employeeId, consumerId) 為無條件唯一鍵；同一對重新指派時沿用既有列
// 重新啟用，而非新增（見 DESIGN.md）
type Assignment struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	EmployeeID     primitive.ObjectID `json:"employeeId" bson:"employeeId"`
	ConsumerID     primitive.ObjectID `json:"consumerId" bson:"consumerId"`
	DailyMilkQuota float64            `json:"dailyMilkQuota" bson:"dailyMilkQuota"`
	AssignedDate   time.Time          `json:"assignedDate" bson:"assignedDate"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var AssignmentIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "consumerId", Value: 1}},
		Options: options.Index().SetName("uniq_employeeId_consumerId").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "isActive", Value: 1}},
		Options: options.Index().SetName("idx_employeeId_isActive"),
	},
	{
		Keys:    bson.D{{Key: "consumerId", Value: 1}, {Key: "isActive", Value: 1}},
		Options: options.Index().SetName("idx_consumerId_isActive"),
	},
}
