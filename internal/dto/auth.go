package dto

import (
	"milkline/internal/core"
)

// 登入：管理員用 username/email，配送員用手機號，同一個欄位吃兩種
type LoginDto struct {
	Identifier string `json:"identifier" binding:"required"` // username / email / mobileNumber
	Password   string `json:"password" binding:"required"`
}

type LoginResponseDto struct {
	Token string     `json:"token"`
	Role  core.Role  `json:"role"`
	User  ProfileDto `json:"user"`
}

// ProfileDto 目前登入者的公開資訊（/auth/me 與登入回應共用）
type ProfileDto struct {
	ID           string    `json:"id"`
	Role         core.Role `json:"role"`
	Name         string    `json:"name"`
	Username     string    `json:"username,omitempty"`     // 管理員
	Email        string    `json:"email,omitempty"`        // 管理員
	MobileNumber string    `json:"mobileNumber,omitempty"` // 配送員
	AssignedArea string    `json:"assignedArea,omitempty"` // 配送員
}
