package service

import (
	"context"
	"errors"
	"fmt"

	"milkline/internal/core"
	"milkline/internal/database/mongodb/model"
	"milkline/internal/dto"
	cErr "milkline/internal/pkg/error"
	"milkline/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ConsumerService struct {
	trace        *telemetry.Trace
	consumerRepo ConsumerStore
	settingsRepo SettingsStore
}

func NewConsumerService(trace *telemetry.Trace, consumerRepo ConsumerStore, settingsRepo SettingsStore) *ConsumerService {
	return &ConsumerService{trace: trace, consumerRepo: consumerRepo, settingsRepo: settingsRepo}
}

// 新增訂奶戶。費率未給時採系統預設
func (s *ConsumerService) CreateConsumer(ctx context.Context, req *dto.CreateConsumerDto) (*dto.ConsumerResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	rate := float64(0)
	if req.PerLiterRate != nil {
		rate = *req.PerLiterRate
	} else {
		settings, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return nil, cErr.DatabaseError("database load settings error")
		}
		rate = settings.DefaultMilkRate
	}

	consumer := &model.Consumer{
		FullName:       req.FullName,
		MobileNumber:   req.MobileNumber,
		Address:        req.Address,
		Area:           req.Area,
		PerLiterRate:   rate,
		DailyMilkQuota: req.DailyMilkQuota,
		IsActive:       true,
	}
	created, err := s.consumerRepo.Create(ctx, consumer)
	if err != nil {
		return nil, cErr.DatabaseError("database CreateConsumer error")
	}
	resp := dto.NewConsumerResponse(created)
	return &resp, nil
}

// 依 id 查詢
func (s *ConsumerService) GetConsumerByID(ctx context.Context, id primitive.ObjectID) (*dto.ConsumerResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	consumer, err := s.consumerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("consumer not found")
		}
		return nil, cErr.DatabaseError("database GetConsumerByID error")
	}
	resp := dto.NewConsumerResponse(consumer)
	return &resp, nil
}

// 列舉訂奶戶（支援分頁與 area / isActive / assignedEmployee 篩選）
func (s *ConsumerService) ListConsumers(ctx context.Context, filter bson.M, page, limit int64) ([]dto.ConsumerResponseDto, int64, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	opts := core.ListOptions{
		Filter: filter,
		Page:   page,
		Limit:  limit,
		Sort:   bson.D{{Key: "createdAt", Value: -1}},
	}
	consumers, err := s.consumerRepo.List(ctx, opts)
	if err != nil {
		return nil, 0, cErr.DatabaseError("database ListConsumers error")
	}
	total, err := s.consumerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, cErr.DatabaseError("database ListConsumers count error")
	}

	resp := make([]dto.ConsumerResponseDto, len(consumers))
	for i, c := range consumers {
		resp[i] = dto.NewConsumerResponse(c)
	}
	return resp, total, nil
}

// 更新訂奶戶。費率改動只影響之後的帳務（見 BillingService）
func (s *ConsumerService) UpdateConsumerByID(ctx context.Context, id primitive.ObjectID, req *dto.UpdateConsumerDto) (*dto.ConsumerResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	update := bson.M{}
	if req.FullName != nil {
		update["fullName"] = *req.FullName
	}
	if req.MobileNumber != nil {
		update["mobileNumber"] = *req.MobileNumber
	}
	if req.Address != nil {
		update["address"] = *req.Address
	}
	if req.Area != nil {
		update["area"] = *req.Area
	}
	if req.PerLiterRate != nil {
		update["perLiterRate"] = *req.PerLiterRate
	}
	if req.DailyMilkQuota != nil {
		update["dailyMilkQuota"] = *req.DailyMilkQuota
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}
	if len(update) == 0 {
		return nil, cErr.BadRequestParams("no fields to update")
	}

	if _, err := s.consumerRepo.UpdateByID(ctx, id, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound(fmt.Sprintf("consumer with id %s not found", id.Hex()))
		}
		return nil, cErr.DatabaseError("database UpdateConsumerByID error")
	}
	return s.GetConsumerByID(ctx, id)
}

// 刪除訂奶戶。歷史配送記錄保留
func (s *ConsumerService) DeleteConsumerByID(ctx context.Context, id primitive.ObjectID) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if err := s.consumerRepo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cErr.NotFound(fmt.Sprintf("consumer with id %s not found", id.Hex()))
		}
		return cErr.DatabaseError("database DeleteConsumerByID error")
	}
	return nil
}

// ListAreas 回傳現有的配送區域清單
func (s *ConsumerService) ListAreas(ctx context.Context) ([]string, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	areas, err := s.consumerRepo.DistinctAreas(ctx)
	if err != nil {
		return nil, cErr.DatabaseError("database ListAreas error")
	}
	return areas, nil
}
