package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"milkline/internal/core"
	"milkline/internal/database/mongodb/model"
	"milkline/internal/dto"
	cErr "milkline/internal/pkg/error"
	"milkline/internal/telemetry"
	"milkline/utils/validate"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DeliveryService struct {
	trace          *telemetry.Trace
	metric         *telemetry.Metric
	deliveryRepo   DeliveryStore
	milkRepo       MilkEntryStore
	assignmentRepo AssignmentStore
	employeeRepo   EmployeeStore
	consumerRepo   ConsumerStore
}

func NewDeliveryService(
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	deliveryRepo DeliveryStore,
	milkRepo MilkEntryStore,
	assignmentRepo AssignmentStore,
	employeeRepo EmployeeStore,
	consumerRepo ConsumerStore,
) *DeliveryService {
	return &DeliveryService{
		trace:          trace,
		metric:         metric,
		deliveryRepo:   deliveryRepo,
		milkRepo:       milkRepo,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
		consumerRepo:   consumerRepo,
	}
}

// RecordDelivery 記錄一筆配送。前置條件依序檢查：
//  1. 訂奶戶存在
//  2. 配送員存在且啟用
//  3. 兩者之間有作用中指派
//  4. 該訂奶戶當日沒有既有配送（唯一鍵兜底）
//  5. 當日集乳有該配送員份額時，剩餘量必須足夠；沒有集乳記錄或
//     沒有份額則放行、不扣帳
//
// 扣帳是單次條件更新，同配送員併發記錄不會把 remaining 扣成負數。
// 配送員身分登入時 employeeId 一律視為本人
func (s *DeliveryService) RecordDelivery(ctx context.Context, principal *core.Principal, req *dto.RecordDeliveryDto) (returnedDto *dto.DeliveryResponseDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	consumerID, err := primitive.ObjectIDFromHex(req.ConsumerID)
	if err != nil {
		return nil, cErr.BadRequestParams("invalid consumerId")
	}

	var employeeID primitive.ObjectID
	if principal != nil && !principal.IsAdmin() {
		employeeID = principal.ID
	} else {
		if req.EmployeeID == "" {
			return nil, cErr.BadRequestParams("employeeId is required")
		}
		employeeID, err = primitive.ObjectIDFromHex(req.EmployeeID)
		if err != nil {
			return nil, cErr.BadRequestParams("invalid employeeId")
		}
	}

	deliveryDate := validate.DayKey(time.Now())
	if req.DeliveryDate != "" {
		deliveryDate, err = validate.ParseDate(req.DeliveryDate)
		if err != nil {
			return nil, cErr.BadRequestParams("invalid deliveryDate")
		}
	}

	traceMetadata := core.TraceRecordDeliveryMeta{
		ConsumerID: consumerID.Hex(),
		EmployeeID: employeeID.Hex(),
		Date:       deliveryDate.Format("2006-01-02"),
		Quantity:   req.QuantityDelivered,
	}
	s.trace.ApplyTraceAttributes(span, traceMetadata)

	// 1. 訂奶戶
	consumer, err := s.consumerRepo.GetByID(ctx, consumerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("consumer not found")
		}
		return nil, cErr.DatabaseError("database RecordDelivery error")
	}

	// 2. 配送員
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("employee not found")
		}
		return nil, cErr.DatabaseError("database RecordDelivery error")
	}
	if !employee.IsActive {
		return nil, cErr.BadRequestParams("employee is not active")
	}

	// 3. 作用中指派
	if _, err := s.assignmentRepo.FindActivePair(ctx, employeeID, consumerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotAssigned(fmt.Sprintf(
				"consumer %s is not assigned to employee %s", consumerID.Hex(), employeeID.Hex()))
		}
		return nil, cErr.DatabaseError("database RecordDelivery error")
	}

	// 4. 當日重複
	if _, err := s.deliveryRepo.FindByConsumerAndDate(ctx, consumerID, deliveryDate); err == nil {
		return nil, cErr.DuplicateDelivery(fmt.Sprintf(
			"delivery for consumer %s on %s already recorded", consumerID.Hex(), deliveryDate.Format("2006-01-02")))
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, cErr.DatabaseError("database RecordDelivery error")
	}

	// 5. 配額（有集乳記錄且有份額才檢查）
	consumed := false
	entry, err := s.milkRepo.GetByDate(ctx, deliveryDate)
	switch {
	case err == nil && entry.AllocationFor(employeeID) != nil:
		ok, err := s.milkRepo.ConsumeAllocation(ctx, deliveryDate, employeeID, req.QuantityDelivered)
		if err != nil {
			return nil, cErr.DatabaseError("database RecordDelivery error")
		}
		if !ok {
			remaining := entry.AllocationFor(employeeID).RemainingQuantity
			traceMetadata.QuotaCheck = "rejected"
			s.trace.ApplyTraceAttributes(span, traceMetadata)
			if s.metric.QuotaRejectionsTotal != nil {
				s.metric.QuotaRejectionsTotal.WithLabelValues("insufficient_remaining").Inc()
			}
			return nil, cErr.QuotaExceeded(fmt.Sprintf(
				"quantity %.2fL exceeds remaining quota %.2fL", req.QuantityDelivered, remaining))
		}
		consumed = true
		traceMetadata.QuotaCheck = "consumed"
	case err == nil:
		// 有集乳記錄但該配送員無份額，放行
		traceMetadata.QuotaCheck = "no_allocation"
	case errors.Is(err, mongo.ErrNoDocuments):
		// 當日無集乳記錄，放行
		traceMetadata.QuotaCheck = "no_entry"
	default:
		return nil, cErr.DatabaseError("database RecordDelivery error")
	}
	s.trace.ApplyTraceAttributes(span, traceMetadata)

	delivery := &model.DailyDelivery{
		ConsumerID:        consumerID,
		EmployeeID:        employeeID,
		DeliveryDate:      deliveryDate,
		QuantityDelivered: req.QuantityDelivered,
		RatePerLiter:      consumer.PerLiterRate,
	}
	created, err := s.deliveryRepo.Create(ctx, delivery)
	if err != nil {
		// 寫入失敗要沖銷已扣的份額
		if consumed {
			_ = s.milkRepo.RestoreAllocation(ctx, deliveryDate, employeeID, req.QuantityDelivered)
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, cErr.DuplicateDelivery(fmt.Sprintf(
				"delivery for consumer %s on %s already recorded", consumerID.Hex(), deliveryDate.Format("2006-01-02")))
		}
		return nil, cErr.DatabaseError("database RecordDelivery error")
	}

	if s.metric.DeliveriesRecordedTotal != nil {
		s.metric.DeliveriesRecordedTotal.WithLabelValues("recorded").Inc()
	}
	resp := dto.NewDeliveryResponse(created)
	resp.ConsumerName = consumer.FullName
	return &resp, nil
}

// ListDeliveries 列舉配送記錄。配送員身分只看得到自己的
func (s *DeliveryService) ListDeliveries(ctx context.Context, principal *core.Principal, filter bson.M, page, limit int64) ([]dto.DeliveryResponseDto, int64, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if filter == nil {
		filter = bson.M{}
	}
	if principal != nil && !principal.IsAdmin() {
		filter["employeeId"] = principal.ID
	}

	opts := core.ListOptions{
		Filter: filter,
		Page:   page,
		Limit:  limit,
		Sort:   bson.D{{Key: "deliveryDate", Value: -1}},
	}
	deliveries, err := s.deliveryRepo.List(ctx, opts)
	if err != nil {
		return nil, 0, cErr.DatabaseError("database ListDeliveries error")
	}
	total, err := s.deliveryRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, cErr.DatabaseError("database ListDeliveries count error")
	}

	resp := make([]dto.DeliveryResponseDto, len(deliveries))
	for i, d := range deliveries {
		resp[i] = dto.NewDeliveryResponse(d)
		if consumer, err := s.consumerRepo.GetByID(ctx, d.ConsumerID); err == nil {
			resp[i].ConsumerName = consumer.FullName
		}
	}
	return resp, total, nil
}
