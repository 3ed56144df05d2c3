package dto

import (
	"time"

	"milkline/internal/database/mongodb/model"
)

// 更新系統設定
type UpdateSettingsDto struct {
	DefaultMilkRate *float64 `json:"defaultMilkRate,omitempty" binding:"omitempty,gt=0"`
}

type SettingsResponseDto struct {
	DefaultMilkRate float64   `json:"defaultMilkRate"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewSettingsResponse(settings *model.SystemSettings) SettingsResponseDto {
	return SettingsResponseDto{
		DefaultMilkRate: settings.DefaultMilkRate,
		UpdatedAt:       settings.UpdatedAt,
	}
}
