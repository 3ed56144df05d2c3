package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"milkline/config"
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

// RateModeSnapshot 用配送當下的費率快照計費；預設（current）用訂奶戶目前費率，
// 費率調整會回溯影響未出帳的月份
const (
	RateModeCurrent  = "current"
	RateModeSnapshot = "snapshot"
)

type BillingService struct {
	trace        *telemetry.Trace
	config       *config.Configuration
	deliveryRepo DeliveryStore
	consumerRepo ConsumerStore
}

func NewBillingService(
	trace *telemetry.Trace,
	config *config.Configuration,
	deliveryRepo DeliveryStore,
	consumerRepo ConsumerStore,
) *BillingService {
	return &BillingService{trace: trace, config: config, deliveryRepo: deliveryRepo, consumerRepo: consumerRepo}
}

// ParseMonth 解析 YYYY-MM，回傳該月起訖（UTC，[from, to)）
func ParseMonth(raw string) (from, to time.Time, err error) {
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, want YYYY-MM", raw)
	}
	from = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}

// ResolvePeriod 決定計費區間。startDate/endDate（含頭尾）優先於 month；
// 回傳半開區間 [from, to) 與顯示用標籤
func ResolvePeriod(req *dto.BillingPeriodDto) (from, to time.Time, label string, err error) {
	if req.StartDate != "" || req.EndDate != "" {
		if req.StartDate == "" || req.EndDate == "" {
			return time.Time{}, time.Time{}, "", fmt.Errorf("startDate and endDate must both be given")
		}
		from, err = validate.ParseDate(req.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}
		var end time.Time
		end, err = validate.ParseDate(req.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, "", err
		}
		if end.Before(from) {
			return time.Time{}, time.Time{}, "", fmt.Errorf("endDate %s is before startDate %s", req.EndDate, req.StartDate)
		}
		to = end.AddDate(0, 0, 1)
		label = fmt.Sprintf("%s ~ %s", from.Format("2006-01-02"), end.Format("2006-01-02"))
		return from, to, label, nil
	}
	from, to, err = ParseMonth(req.Month)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}
	return from, to, req.Month, nil
}

func (s *BillingService) rateFor(delivery *model.DailyDelivery, consumer *model.Consumer) float64 {
	if s.config.Billing.RateMode == RateModeSnapshot && delivery.RatePerLiter > 0 {
		return delivery.RatePerLiter
	}
	return consumer.PerLiterRate
}

// ConsumerMonthlyBill 單一訂奶戶的期間帳單（附逐日明細）
func (s *BillingService) ConsumerMonthlyBill(ctx context.Context, consumerID primitive.ObjectID, period *dto.BillingPeriodDto) (*dto.ConsumerBillDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	from, to, label, err := ResolvePeriod(period)
	if err != nil {
		return nil, cErr.BadRequestParams(err.Error())
	}

	consumer, err := s.consumerRepo.GetByID(ctx, consumerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("consumer not found")
		}
		return nil, cErr.DatabaseError("database ConsumerMonthlyBill error")
	}

	filter := bson.M{
		"consumerId":   consumerID,
		"deliveryDate": bson.M{"$gte": from, "$lt": to},
	}
	deliveries, err := s.deliveryRepo.FindRange(ctx, filter)
	if err != nil {
		return nil, cErr.DatabaseError("database ConsumerMonthlyBill error")
	}

	bill := &dto.ConsumerBillDto{
		ConsumerID:   consumerID.Hex(),
		FullName:     consumer.FullName,
		MobileNumber: consumer.MobileNumber,
		Area:         consumer.Area,
		Month:        label,
		Deliveries:   make([]dto.BillLineDto, 0, len(deliveries)),
	}
	sort.Slice(deliveries, func(i, j int) bool {
		return deliveries[i].DeliveryDate.Before(deliveries[j].DeliveryDate)
	})
	for _, d := range deliveries {
		rate := s.rateFor(d, consumer)
		amount := d.QuantityDelivered * rate
		bill.TotalQuantity += d.QuantityDelivered
		bill.TotalAmount += amount
		bill.Deliveries = append(bill.Deliveries, dto.BillLineDto{
			Date:     d.DeliveryDate,
			Quantity: d.QuantityDelivered,
			Rate:     rate,
			Amount:   amount,
		})
	}
	return bill, nil
}

// MonthlyReport 全站期間報表：逐戶彙總加總計。
// 訂奶戶已被刪除的孤兒配送記錄跳過不計
func (s *BillingService) MonthlyReport(ctx context.Context, period *dto.BillingPeriodDto) (*dto.MonthlyReportDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	from, to, label, err := ResolvePeriod(period)
	if err != nil {
		return nil, cErr.BadRequestParams(err.Error())
	}

	filter := bson.M{"deliveryDate": bson.M{"$gte": from, "$lt": to}}
	deliveries, err := s.deliveryRepo.FindRange(ctx, filter)
	if err != nil {
		return nil, cErr.DatabaseError("database MonthlyReport error")
	}

	report := &dto.MonthlyReportDto{Month: label, Consumers: []dto.ConsumerBillSummaryDto{}}
	summaries := make(map[primitive.ObjectID]*dto.ConsumerBillSummaryDto)
	consumers := make(map[primitive.ObjectID]*model.Consumer)

	for _, d := range deliveries {
		consumer, ok := consumers[d.ConsumerID]
		if !ok {
			consumer, err = s.consumerRepo.GetByID(ctx, d.ConsumerID)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					continue
				}
				return nil, cErr.DatabaseError("database MonthlyReport error")
			}
			consumers[d.ConsumerID] = consumer
		}

		summary, ok := summaries[d.ConsumerID]
		if !ok {
			summary = &dto.ConsumerBillSummaryDto{
				ConsumerID: d.ConsumerID.Hex(),
				FullName:   consumer.FullName,
				Area:       consumer.Area,
			}
			summaries[d.ConsumerID] = summary
		}
		amount := d.QuantityDelivered * s.rateFor(d, consumer)
		summary.TotalQuantity += d.QuantityDelivered
		summary.TotalAmount += amount
		report.GrandTotalQuantity += d.QuantityDelivered
		report.GrandTotalAmount += amount
	}

	for _, summary := range summaries {
		report.Consumers = append(report.Consumers, *summary)
	}
	sort.Slice(report.Consumers, func(i, j int) bool {
		return report.Consumers[i].FullName < report.Consumers[j].FullName
	})
	return report, nil
}

// Outstanding 逐一檢視作用中訂奶戶，回報期間應收金額大於零者，金額由大到小。
// 已停用的訂奶戶即使期間內有配送也不列入
func (s *BillingService) Outstanding(ctx context.Context, period *dto.BillingPeriodDto) ([]dto.OutstandingItemDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	from, to, label, err := ResolvePeriod(period)
	if err != nil {
		return nil, cErr.BadRequestParams(err.Error())
	}

	active, err := s.consumerRepo.List(ctx, core.ListOptions{Filter: bson.M{"isActive": true}})
	if err != nil {
		return nil, cErr.DatabaseError("database Outstanding error")
	}

	items := make([]dto.OutstandingItemDto, 0, len(active))
	for _, consumer := range active {
		filter := bson.M{
			"consumerId":   consumer.ID,
			"deliveryDate": bson.M{"$gte": from, "$lt": to},
		}
		deliveries, err := s.deliveryRepo.FindRange(ctx, filter)
		if err != nil {
			return nil, cErr.DatabaseError("database Outstanding error")
		}

		var totalQuantity, totalAmount float64
		for _, d := range deliveries {
			totalQuantity += d.QuantityDelivered
			totalAmount += d.QuantityDelivered * s.rateFor(d, consumer)
		}
		if totalAmount <= 0 {
			continue
		}
		items = append(items, dto.OutstandingItemDto{
			ConsumerID:    consumer.ID.Hex(),
			FullName:      consumer.FullName,
			MobileNumber:  consumer.MobileNumber,
			Area:          consumer.Area,
			Month:         label,
			TotalQuantity: totalQuantity,
			TotalAmount:   totalAmount,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].TotalAmount > items[j].TotalAmount
	})
	return items, nil
}
