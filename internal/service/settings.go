package service

import (
	"context"

	"milkline/internal/dto"
	cErr "milkline/internal/pkg/error"
	"milkline/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
)

type SettingsService struct {
	trace        *telemetry.Trace
	settingsRepo SettingsStore
}

func NewSettingsService(trace *telemetry.Trace, settingsRepo SettingsStore) *SettingsService {
	return &SettingsService{trace: trace, settingsRepo: settingsRepo}
}

// GetSettings 取得系統設定（首次讀取會以預設值建立）
func (s *SettingsService) GetSettings(ctx context.Context) (*dto.SettingsResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, cErr.DatabaseError("database GetSettings error")
	}
	resp := dto.NewSettingsResponse(settings)
	return &resp, nil
}

// UpdateSettings 更新系統設定。預設費率只影響之後新建的訂奶戶
func (s *SettingsService) UpdateSettings(ctx context.Context, req *dto.UpdateSettingsDto) (*dto.SettingsResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	update := bson.M{}
	if req.DefaultMilkRate != nil {
		update["defaultMilkRate"] = *req.DefaultMilkRate
	}
	if len(update) == 0 {
		return nil, cErr.BadRequestParams("no fields to update")
	}

	settings, err := s.settingsRepo.Update(ctx, update)
	if err != nil {
		return nil, cErr.DatabaseError("database UpdateSettings error")
	}
	resp := dto.NewSettingsResponse(settings)
	return &resp, nil
}
