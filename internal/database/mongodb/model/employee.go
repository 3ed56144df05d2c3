package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Employee 配送員。停用（IsActive=false）不會連帶刪除歷史指派與配送
type Employee struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	MobileNumber string             `json:"mobileNumber" bson:"mobileNumber"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	AssignedArea string             `json:"assignedArea,omitempty" bson:"assignedArea,omitempty"`
	IsActive     bool               `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var EmployeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "mobileNumber", Value: 1}},
		Options: options.Index().SetName("uniq_mobileNumber").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "isActive", Value: 1}},
		Options: options.Index().SetName("idx_isActive"),
	},
}
