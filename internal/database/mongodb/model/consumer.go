package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Consumer 訂奶戶。AssignedEmployee 與 Assignment 同步維護：
// 有作用中的指派時指向該配送員，否則為 nil
type Consumer struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id"`
	FullName         string              `json:"fullName" bson:"fullName"`
	MobileNumber     string              `json:"mobileNumber" bson:"mobileNumber"`
	Address          string              `json:"address" bson:"address"`
	Area             string              `json:"area" bson:"area"`
	PerLiterRate     float64             `json:"perLiterRate" bson:"perLiterRate"`
	DailyMilkQuota   float64             `json:"dailyMilkQuota" bson:"dailyMilkQuota"`
	AssignedEmployee *primitive.ObjectID `json:"assignedEmployee,omitempty" bson:"assignedEmployee,omitempty"`
	IsActive         bool                `json:"isActive" bson:"isActive"`
	CreatedAt        time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt" bson:"updatedAt"`
}

var ConsumerIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "mobileNumber", Value: 1}},
		Options: options.Index().SetName("idx_mobileNumber"),
	},
	{
		Keys:    bson.D{{Key: "area", Value: 1}},
		Options: options.Index().SetName("idx_area"),
	},
	{
		Keys:    bson.D{{Key: "isActive", Value: 1}},
		Options: options.Index().SetName("idx_isActive"),
	},
}
