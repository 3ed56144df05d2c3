package dto

import (
	"time"

	"milkline/internal/database/mongodb/model"
)

// 建立指派。DailyMilkQuota 省略時沿用訂奶戶的每日配額
type CreateAssignmentDto struct {
	EmployeeID     string   `json:"employeeId" binding:"required"`
	ConsumerID     string   `json:"consumerId" binding:"required"`
	DailyMilkQuota *float64 `json:"dailyMilkQuota,omitempty" binding:"omitempty,gt=0"`
	AssignedDate   string   `json:"assignedDate,omitempty"` // YYYY-MM-DD，省略為今日
}

// 更新指派（部分欄位可選）。EmployeeID 換人時同步改指訂奶戶的負責配送員
type UpdateAssignmentDto struct {
	EmployeeID     *string  `json:"employeeId,omitempty"`
	DailyMilkQuota *float64 `json:"dailyMilkQuota,omitempty" binding:"omitempty,gt=0"`
	IsActive       *bool    `json:"isActive,omitempty"`
}

type AssignmentResponseDto struct {
	ID             string               `json:"id"`
	EmployeeID     string               `json:"employeeId"`
	ConsumerID     string               `json:"consumerId"`
	DailyMilkQuota float64              `json:"dailyMilkQuota"`
	AssignedDate   time.Time            `json:"assignedDate"`
	IsActive       bool                 `json:"isActive"`
	Employee       *EmployeeResponseDto `json:"employee,omitempty"`
	Consumer       *ConsumerResponseDto `json:"consumer,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

func NewAssignmentResponse(assignment *model.Assignment) AssignmentResponseDto {
	return AssignmentResponseDto{
		ID:             assignment.ID.Hex(),
		EmployeeID:     assignment.EmployeeID.Hex(),
		ConsumerID:     assignment.ConsumerID.Hex(),
		DailyMilkQuota: assignment.DailyMilkQuota,
		AssignedDate:   assignment.AssignedDate,
		IsActive:       assignment.IsActive,
		CreatedAt:      assignment.CreatedAt,
		UpdatedAt:      assignment.UpdatedAt,
	}
}
