package dto

import (
	"time"

	"milkline/internal/database/mongodb/model"
)

// 建立配送員。Password 省略時以手機號作為初始密碼
type CreateEmployeeDto struct {
	Name         string `json:"name" binding:"required"`
	MobileNumber string `json:"mobileNumber" binding:"required,mobile"` // 10 碼，6-9 開頭
	Password     string `json:"password,omitempty" binding:"omitempty,min=6"`
	AssignedArea string `json:"assignedArea,omitempty"`
}

// 更新配送員（部分欄位可選）
type UpdateEmployeeDto struct {
	Name         *string `json:"name,omitempty"`
	MobileNumber *string `json:"mobileNumber,omitempty" binding:"omitempty,mobile"`
	AssignedArea *string `json:"assignedArea,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// 重設配送員密碼
type ResetPasswordDto struct {
	Password string `json:"password" binding:"required,min=6"`
}

type EmployeeResponseDto struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MobileNumber string    `json:"mobileNumber"`
	AssignedArea string    `json:"assignedArea,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewEmployeeResponse(employee *model.Employee) EmployeeResponseDto {
	return EmployeeResponseDto{
		ID:           employee.ID.Hex(),
		Name:         employee.Name,
		MobileNumber: employee.MobileNumber,
		AssignedArea: employee.AssignedArea,
		IsActive:     employee.IsActive,
		CreatedAt:    employee.CreatedAt,
		UpdatedAt:    employee.UpdatedAt,
	}
}
