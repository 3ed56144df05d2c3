package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EmployeeAllocation 內嵌於 DailyMilkEntry 的單一配送員份額。
// 配送記錄時就地遞增 delivered / 遞減 remaining；核銷時設 isVerified
type EmployeeAllocation struct {
	EmployeeID        primitive.ObjectID `json:"employeeId" bson:"employeeId"`
	AllocatedQuantity float64            `json:"allocatedQuantity" bson:"allocatedQuantity"`
	DeliveredQuantity float64            `json:"deliveredQuantity" bson:"deliveredQuantity"`
	RemainingQuantity float64            `json:"remainingQuantity" bson:"remainingQuantity"`
	IsVerified        bool               `json:"isVerified" bson:"isVerified"`
	VerifiedAt        *time.Time         `json:"verifiedAt,omitempty" bson:"verifiedAt,omitempty"`
}

// DailyMilkEntry 每日集乳記錄，entryDate 為唯一鍵（UTC 零點）。
// EmployeeAllocations 由本文件獨佔持有，無獨立生命週期
type DailyMilkEntry struct {
	ID                  primitive.ObjectID   `json:"id" bson:"_id"`
	EntryDate           time.Time            `json:"entryDate" bson:"entryDate"`
	TotalMilkCollected  float64              `json:"totalMilkCollected" bson:"totalMilkCollected"`
	EmployeeAllocations []EmployeeAllocation `json:"employeeAllocations" bson:"employeeAllocations"`
	CreatedAt           time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// AllocationIndex 以 employeeId 建索引供 O(1) 查找；slice 本身保留顯示順序
func (e *DailyMilkEntry) AllocationIndex() map[primitive.ObjectID]*EmployeeAllocation {
	idx := make(map[primitive.ObjectID]*EmployeeAllocation, len(e.EmployeeAllocations))
	for i := range e.EmployeeAllocations {
		idx[e.EmployeeAllocations[i].EmployeeID] = &e.EmployeeAllocations[i]
	}
	return idx
}

// AllocationFor 取出指定配送員的份額，不存在回傳 nil
func (e *DailyMilkEntry) AllocationFor(employeeID primitive.ObjectID) *EmployeeAllocation {
	return e.AllocationIndex()[employeeID]
}

// TotalAllocated 分配總量（建立時不得超過 TotalMilkCollected，可小於）
func (e *DailyMilkEntry) TotalAllocated() float64 {
	var sum float64
	for _, a := range e.EmployeeAllocations {
		sum += a.AllocatedQuantity
	}
	return sum
}

var DailyMilkEntryIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "entryDate", Value: 1}},
		Options: options.Index().SetName("uniq_entryDate").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "entryDate", Value: -1}},
		Options: options.Index().SetName("idx_entryDate_desc"),
	},
}
