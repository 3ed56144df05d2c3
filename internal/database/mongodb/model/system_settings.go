package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultMilkRate 未設定時的每公升預設費率（盧比）
const DefaultMilkRate = 60

// SystemSettings 單例設定，首次讀取時以預設值延遲建立
type SystemSettings struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	DefaultMilkRate float64            `json:"defaultMilkRate" bson:"defaultMilkRate"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}
