package dto

import (
	"time"

	"milkline/internal/database/mongodb/model"
)

// 建立訂奶戶。PerLiterRate 省略時採用系統預設費率
type CreateConsumerDto struct {
	FullName       string   `json:"fullName" binding:"required"`
	MobileNumber   string   `json:"mobileNumber" binding:"required,mobile"`
	Address        string   `json:"address" binding:"required"`
	Area           string   `json:"area" binding:"required"`
	PerLiterRate   *float64 `json:"perLiterRate,omitempty" binding:"omitempty,gt=0"`
	DailyMilkQuota float64  `json:"dailyMilkQuota" binding:"required,gt=0"`
}

// 更新訂奶戶（部分欄位可選）
type UpdateConsumerDto struct {
	FullName       *string  `json:"fullName,omitempty"`
	MobileNumber   *string  `json:"mobileNumber,omitempty" binding:"omitempty,mobile"`
	Address        *string  `json:"address,omitempty"`
	Area           *string  `json:"area,omitempty"`
	PerLiterRate   *float64 `json:"perLiterRate,omitempty" binding:"omitempty,gt=0"`
	DailyMilkQuota *float64 `json:"dailyMilkQuota,omitempty" binding:"omitempty,gt=0"`
	IsActive       *bool    `json:"isActive,omitempty"`
}

type ConsumerResponseDto struct {
	ID               string    `json:"id"`
	FullName         string    `json:"fullName"`
	MobileNumber     string    `json:"mobileNumber"`
	Address          string    `json:"address"`
	Area             string    `json:"area"`
	PerLiterRate     float64   `json:"perLiterRate"`
	DailyMilkQuota   float64   `json:"dailyMilkQuota"`
	AssignedEmployee string    `json:"assignedEmployee,omitempty"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func NewConsumerResponse(consumer *model.Consumer) ConsumerResponseDto {
	response := ConsumerResponseDto{
		ID:             consumer.ID.Hex(),
		FullName:       consumer.FullName,
		MobileNumber:   consumer.MobileNumber,
		Address:        consumer.Address,
		Area:           consumer.Area,
		PerLiterRate:   consumer.PerLiterRate,
		DailyMilkQuota: consumer.DailyMilkQuota,
		IsActive:       consumer.IsActive,
		CreatedAt:      consumer.CreatedAt,
		UpdatedAt:      consumer.UpdatedAt,
	}
	if consumer.AssignedEmployee != nil {
		response.AssignedEmployee = consumer.AssignedEmployee.Hex()
	}
	return response
}
