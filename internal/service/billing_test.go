package service

import (
	"context"
	"math"
	"testing"
	"time"

	"milkline/config"
	"milkline/internal/database/mongodb/model"
	"milkline/internal/dto"
	cErr "milkline/internal/pkg/error"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func monthOf(month string) *dto.BillingPeriodDto {
	return &dto.BillingPeriodDto{Month: month}
}

func TestParseMonth(t *testing.T) {
	from, to, err := ParseMonth("2026-08")
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}
	if !from.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v", from)
	}
	if !to.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("to = %v, want first day of next month", to)
	}

	for _, raw := range []string{"2026/08", "2026-8", "August", ""} {
		if _, _, err := ParseMonth(raw); err == nil {
			t.Errorf("ParseMonth(%q) accepted invalid input", raw)
		}
	}
}

func TestResolvePeriod(t *testing.T) {
	t.Run("explicit range wins over month", func(t *testing.T) {
		from, to, label, err := ResolvePeriod(&dto.BillingPeriodDto{
			Month: "2026-08", StartDate: "2026-08-10", EndDate: "2026-08-12",
		})
		if err != nil {
			t.Fatalf("ResolvePeriod: %v", err)
		}
		if !from.Equal(time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("from = %v", from)
		}
		// 訖日含當日
		if !to.Equal(time.Date(2026, 8, 13, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("to = %v, want day after endDate", to)
		}
		if label != "2026-08-10 ~ 2026-08-12" {
			t.Errorf("label = %q", label)
		}
	})

	t.Run("month fallback", func(t *testing.T) {
		from, to, label, err := ResolvePeriod(monthOf("2026-08"))
		if err != nil {
			t.Fatalf("ResolvePeriod: %v", err)
		}
		if !from.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) || !to.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("range = [%v, %v)", from, to)
		}
		if label != "2026-08" {
			t.Errorf("label = %q", label)
		}
	})

	t.Run("rejects bad input", func(t *testing.T) {
		cases := []*dto.BillingPeriodDto{
			{StartDate: "2026-08-10"},                        // 缺訖日
			{EndDate: "2026-08-10"},                          // 缺起日
			{StartDate: "2026-08-10", EndDate: "2026-08-01"}, // 訖日早於起日
			{StartDate: "10/08/2026", EndDate: "2026-08-12"}, // 格式錯誤
			{}, // 兩者皆空
		}
		for _, req := range cases {
			if _, _, _, err := ResolvePeriod(req); err == nil {
				t.Errorf("ResolvePeriod(%+v) accepted invalid input", req)
			}
		}
	})
}

func billingFixture(t *testing.T, rateMode string) (*BillingService, *fakeDeliveryStore, *fakeConsumerStore) {
	t.Helper()
	deliveries := &fakeDeliveryStore{}
	consumers := newFakeConsumerStore()
	conf := &config.Configuration{Billing: config.Billing{RateMode: rateMode}}
	return NewBillingService(testTrace(t), conf, deliveries, consumers), deliveries, consumers
}

func addDelivery(store *fakeDeliveryStore, consumerID primitive.ObjectID, day int, quantity, rate float64) {
	store.deliveries = append(store.deliveries, &model.DailyDelivery{
		ID:                primitive.NewObjectID(),
		ConsumerID:        consumerID,
		EmployeeID:        primitive.NewObjectID(),
		DeliveryDate:      time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC),
		QuantityDelivered: quantity,
		RatePerLiter:      rate,
	})
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestConsumerMonthlyBill(t *testing.T) {
	ctx := context.Background()

	t.Run("current rate mode", func(t *testing.T) {
		svc, deliveries, consumers := billingFixture(t, RateModeCurrent)
		consumer := &model.Consumer{ID: primitive.NewObjectID(), FullName: "Lakshmi", Area: "North", PerLiterRate: 60}
		consumers.consumers[consumer.ID] = consumer
		addDelivery(deliveries, consumer.ID, 3, 2, 50) // 快照 50 應被忽略
		addDelivery(deliveries, consumer.ID, 1, 3, 50)
		addDelivery(deliveries, consumer.ID, 2, 5, 50)
		// 月外記錄不計
		deliveries.deliveries = append(deliveries.deliveries, &model.DailyDelivery{
			ID: primitive.NewObjectID(), ConsumerID: consumer.ID,
			DeliveryDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), QuantityDelivered: 99,
		})

		bill, err := svc.ConsumerMonthlyBill(ctx, consumer.ID, monthOf("2026-08"))
		if err != nil {
			t.Fatalf("ConsumerMonthlyBill: %v", err)
		}
		if !almostEqual(bill.TotalQuantity, 10) {
			t.Errorf("TotalQuantity = %v, want 10", bill.TotalQuantity)
		}
		if !almostEqual(bill.TotalAmount, 600) {
			t.Errorf("TotalAmount = %v, want 10 * 60 = 600", bill.TotalAmount)
		}
		if len(bill.Deliveries) != 3 {
			t.Fatalf("lines = %d, want 3", len(bill.Deliveries))
		}
		for i := 1; i < len(bill.Deliveries); i++ {
			if bill.Deliveries[i].Date.Before(bill.Deliveries[i-1].Date) {
				t.Errorf("lines not sorted ascending: %v before %v", bill.Deliveries[i].Date, bill.Deliveries[i-1].Date)
			}
		}
	})

	t.Run("explicit date range", func(t *testing.T) {
		svc, deliveries, consumers := billingFixture(t, RateModeCurrent)
		consumer := &model.Consumer{ID: primitive.NewObjectID(), FullName: "Lakshmi", PerLiterRate: 60}
		consumers.consumers[consumer.ID] = consumer
		addDelivery(deliveries, consumer.ID, 9, 1, 60)  // 起日前一天不計
		addDelivery(deliveries, consumer.ID, 10, 2, 60)
		addDelivery(deliveries, consumer.ID, 12, 3, 60) // 訖日當天要計
		addDelivery(deliveries, consumer.ID, 13, 4, 60)

		bill, err := svc.ConsumerMonthlyBill(ctx, consumer.ID, &dto.BillingPeriodDto{
			StartDate: "2026-08-10", EndDate: "2026-08-12",
		})
		if err != nil {
			t.Fatalf("ConsumerMonthlyBill: %v", err)
		}
		if !almostEqual(bill.TotalQuantity, 5) {
			t.Errorf("TotalQuantity = %v, want 5 (range inclusive of endDate)", bill.TotalQuantity)
		}
		if bill.Month != "2026-08-10 ~ 2026-08-12" {
			t.Errorf("period label = %q", bill.Month)
		}
	})

	t.Run("snapshot rate mode", func(t *testing.T) {
		svc, deliveries, consumers := billingFixture(t, RateModeSnapshot)
		consumer := &model.Consumer{ID: primitive.NewObjectID(), FullName: "Lakshmi", PerLiterRate: 60}
		consumers.consumers[consumer.ID] = consumer
		addDelivery(deliveries, consumer.ID, 1, 2, 50)
		addDelivery(deliveries, consumer.ID, 2, 2, 0) // 無快照退回目前費率

		bill, err := svc.ConsumerMonthlyBill(ctx, consumer.ID, monthOf("2026-08"))
		if err != nil {
			t.Fatalf("ConsumerMonthlyBill: %v", err)
		}
		if !almostEqual(bill.TotalAmount, 2*50+2*60) {
			t.Errorf("TotalAmount = %v, want 220", bill.TotalAmount)
		}
	})

	t.Run("unknown consumer", func(t *testing.T) {
		svc, _, _ := billingFixture(t, RateModeCurrent)
		_, err := svc.ConsumerMonthlyBill(ctx, primitive.NewObjectID(), monthOf("2026-08"))
		assertErrorCode(t, err, cErr.NOT_FOUND)
	})

	t.Run("invalid month", func(t *testing.T) {
		svc, _, _ := billingFixture(t, RateModeCurrent)
		_, err := svc.ConsumerMonthlyBill(ctx, primitive.NewObjectID(), monthOf("08-2026"))
		assertErrorCode(t, err, cErr.BAD_REQUEST_PARAMS)
	})
}

func TestMonthlyReport(t *testing.T) {
	ctx := context.Background()
	svc, deliveries, consumers := billingFixture(t, RateModeCurrent)

	alpha := &model.Consumer{ID: primitive.NewObjectID(), FullName: "Anita", Area: "North", PerLiterRate: 60}
	beta := &model.Consumer{ID: primitive.NewObjectID(), FullName: "Bhavna", Area: "South", PerLiterRate: 50}
	consumers.consumers[alpha.ID] = alpha
	consumers.consumers[beta.ID] = beta

	addDelivery(deliveries, alpha.ID, 1, 2, 60)
	addDelivery(deliveries, alpha.ID, 2, 3, 60)
	addDelivery(deliveries, beta.ID, 1, 4, 50)
	// 訂奶戶已刪除的孤兒記錄要跳過
	addDelivery(deliveries, primitive.NewObjectID(), 1, 100, 60)

	report, err := svc.MonthlyReport(ctx, monthOf("2026-08"))
	if err != nil {
		t.Fatalf("MonthlyReport: %v", err)
	}
	if len(report.Consumers) != 2 {
		t.Fatalf("consumers = %d, want 2 (orphan skipped)", len(report.Consumers))
	}
	if report.Consumers[0].FullName != "Anita" || report.Consumers[1].FullName != "Bhavna" {
		t.Errorf("not sorted by name: %+v", report.Consumers)
	}
	if !almostEqual(report.Consumers[0].TotalQuantity, 5) || !almostEqual(report.Consumers[0].TotalAmount, 300) {
		t.Errorf("alpha summary = %+v, want 5L / 300", report.Consumers[0])
	}
	if !almostEqual(report.GrandTotalQuantity, 9) {
		t.Errorf("GrandTotalQuantity = %v, want 9", report.GrandTotalQuantity)
	}
	if !almostEqual(report.GrandTotalAmount, 300+200) {
		t.Errorf("GrandTotalAmount = %v, want 500", report.GrandTotalAmount)
	}
}

func TestOutstanding(t *testing.T) {
	ctx := context.Background()
	svc, deliveries, consumers := billingFixture(t, RateModeCurrent)

	small := &model.Consumer{ID: primitive.NewObjectID(), FullName: "Anita", MobileNumber: "9000000001", PerLiterRate: 60, IsActive: true}
	large := &model.Consumer{ID: primitive.NewObjectID(), FullName: "Bhavna", MobileNumber: "9000000002", PerLiterRate: 60, IsActive: true}
	zero := &model.Consumer{ID: primitive.NewObjectID(), FullName: "Chitra", PerLiterRate: 60, IsActive: true}
	dormant := &model.Consumer{ID: primitive.NewObjectID(), FullName: "Deepa", PerLiterRate: 60, IsActive: false}
	consumers.consumers[small.ID] = small
	consumers.consumers[large.ID] = large
	consumers.consumers[zero.ID] = zero
	consumers.consumers[dormant.ID] = dormant

	addDelivery(deliveries, small.ID, 1, 1, 60)
	addDelivery(deliveries, large.ID, 1, 5, 60)
	addDelivery(deliveries, zero.ID, 1, 0, 60)
	// 停用戶即使有配送也不列入
	addDelivery(deliveries, dormant.ID, 1, 5, 60)

	items, err := svc.Outstanding(ctx, monthOf("2026-08"))
	if err != nil {
		t.Fatalf("Outstanding: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (zero amount and inactive consumer excluded)", len(items))
	}
	for _, item := range items {
		if item.FullName == "Deepa" {
			t.Fatalf("inactive consumer included in outstanding: %+v", item)
		}
	}
	if items[0].FullName != "Bhavna" || items[1].FullName != "Anita" {
		t.Errorf("not sorted by amount desc: %+v", items)
	}
	if !almostEqual(items[0].TotalQuantity, 5) || !almostEqual(items[0].TotalAmount, 300) {
		t.Errorf("top item = %+v, want 5L / 300", items[0])
	}
	if items[0].MobileNumber != "9000000002" {
		t.Errorf("mobile not populated: %+v", items[0])
	}
}
