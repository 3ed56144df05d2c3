package dto

import (
	"time"

	"milkline/internal/database/mongodb/model"
)

// 單一配送員的集乳分配
type AllocationDto struct {
	EmployeeID        string  `json:"employeeId" binding:"required"`
	AllocatedQuantity float64 `json:"allocatedQuantity" binding:"required,gt=0"`
}

// 建立每日集乳記錄。分配總量不得超過 TotalMilkCollected
type CreateMilkEntryDto struct {
	EntryDate          string          `json:"entryDate" binding:"required"` // YYYY-MM-DD
	TotalMilkCollected float64         `json:"totalMilkCollected" binding:"required,gt=0"`
	Allocations        []AllocationDto `json:"allocations" binding:"required,min=1,dive"`
}

// 核銷指定日期 / 配送員的份額
type VerifyAllocationDto struct {
	EntryDate  string `json:"entryDate" binding:"required"` // YYYY-MM-DD
	EmployeeID string `json:"employeeId" binding:"required"`
}

type EmployeeAllocationResponseDto struct {
	EmployeeID        string     `json:"employeeId"`
	EmployeeName      string     `json:"employeeName,omitempty"`
	AllocatedQuantity float64    `json:"allocatedQuantity"`
	DeliveredQuantity float64    `json:"deliveredQuantity"`
	RemainingQuantity float64    `json:"remainingQuantity"`
	IsVerified        bool       `json:"isVerified"`
	VerifiedAt        *time.Time `json:"verifiedAt,omitempty"`
}

type MilkEntryResponseDto struct {
	ID                  string                          `json:"id"`
	EntryDate           time.Time                       `json:"entryDate"`
	TotalMilkCollected  float64                         `json:"totalMilkCollected"`
	TotalAllocated      float64                         `json:"totalAllocated"`
	EmployeeAllocations []EmployeeAllocationResponseDto `json:"employeeAllocations"`
	CreatedAt           time.Time                       `json:"createdAt"`
	UpdatedAt           time.Time                       `json:"updatedAt"`
}

func NewMilkEntryResponse(entry *model.DailyMilkEntry) MilkEntryResponseDto {
	allocations := make([]EmployeeAllocationResponseDto, 0, len(entry.EmployeeAllocations))
	for _, a := range entry.EmployeeAllocations {
		allocations = append(allocations, EmployeeAllocationResponseDto{
			EmployeeID:        a.EmployeeID.Hex(),
			AllocatedQuantity: a.AllocatedQuantity,
			DeliveredQuantity: a.DeliveredQuantity,
			RemainingQuantity: a.RemainingQuantity,
			IsVerified:        a.IsVerified,
			VerifiedAt:        a.VerifiedAt,
		})
	}
	return MilkEntryResponseDto{
		ID:                  entry.ID.Hex(),
		EntryDate:           entry.EntryDate,
		TotalMilkCollected:  entry.TotalMilkCollected,
		TotalAllocated:      entry.TotalAllocated(),
		EmployeeAllocations: allocations,
		CreatedAt:           entry.CreatedAt,
		UpdatedAt:           entry.UpdatedAt,
	}
}

// MyQuotaResponseDto 配送員視角的當日份額
type MyQuotaResponseDto struct {
	Date              time.Time  `json:"date"`
	AllocatedQuantity float64    `json:"allocatedQuantity"`
	DeliveredQuantity float64    `json:"deliveredQuantity"`
	RemainingQuantity float64    `json:"remainingQuantity"`
	IsVerified        bool       `json:"isVerified"`
	VerifiedAt        *time.Time `json:"verifiedAt,omitempty"`
}
