package service

import (
	"context"
	"testing"
	"time"

	"milkline/internal/core"
	"milkline/internal/database/mongodb/model"
	"milkline/internal/dto"
	cErr "milkline/internal/pkg/error"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type deliveryFixture struct {
	svc        *DeliveryService
	employee   *model.Employee
	consumer   *model.Consumer
	entry      *model.DailyMilkEntry
	deliveries *fakeDeliveryStore
	milk       *fakeMilkStore
	day        time.Time
}

// 預設場景：啟用配送員、指派中的訂奶戶、當日份額 10L
func newDeliveryFixture(t *testing.T) *deliveryFixture {
	t.Helper()
	employee := activeEmployee("Ravi")
	consumer := &model.Consumer{
		ID:           primitive.NewObjectID(),
		FullName:     "Lakshmi",
		MobileNumber: "9123456780",
		Area:         "North",
		PerLiterRate: 55,
		IsActive:     true,
	}
	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	entry := &model.DailyMilkEntry{
		ID:                 primitive.NewObjectID(),
		EntryDate:          day,
		TotalMilkCollected: 10,
		EmployeeAllocations: []model.EmployeeAllocation{{
			EmployeeID:        employee.ID,
			AllocatedQuantity: 10,
			RemainingQuantity: 10,
		}},
	}
	assignment := &model.Assignment{
		ID:         primitive.NewObjectID(),
		EmployeeID: employee.ID,
		ConsumerID: consumer.ID,
		IsActive:   true,
	}
	deliveries := &fakeDeliveryStore{}
	milk := newFakeMilkStore(entry)
	svc := NewDeliveryService(
		testTrace(t), testMetric(),
		deliveries, milk,
		newFakeAssignmentStore(assignment),
		newFakeEmployeeStore(employee),
		newFakeConsumerStore(consumer),
	)
	return &deliveryFixture{
		svc: svc, employee: employee, consumer: consumer,
		entry: entry, deliveries: deliveries, milk: milk, day: day,
	}
}

func adminPrincipal() *core.Principal {
	return &core.Principal{ID: primitive.NewObjectID(), Role: core.RoleAdmin}
}

func TestRecordDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements remaining and snapshots rate", func(t *testing.T) {
		f := newDeliveryFixture(t)
		resp, err := f.svc.RecordDelivery(ctx, adminPrincipal(), &dto.RecordDeliveryDto{
			ConsumerID:        f.consumer.ID.Hex(),
			EmployeeID:        f.employee.ID.Hex(),
			DeliveryDate:      "2026-08-20",
			QuantityDelivered: 3,
		})
		if err != nil {
			t.Fatalf("RecordDelivery: %v", err)
		}
		if resp.RatePerLiter != 55 {
			t.Errorf("RatePerLiter = %v, want snapshot 55", resp.RatePerLiter)
		}
		if resp.ConsumerName != "Lakshmi" {
			t.Errorf("ConsumerName = %q", resp.ConsumerName)
		}
		allocation := f.entry.AllocationFor(f.employee.ID)
		if allocation.RemainingQuantity != 7 || allocation.DeliveredQuantity != 3 {
			t.Errorf("allocation after record = %+v, want delivered 3 remaining 7", allocation)
		}
	})

	t.Run("quota exceeded", func(t *testing.T) {
		f := newDeliveryFixture(t)
		_, err := f.svc.RecordDelivery(ctx, adminPrincipal(), &dto.RecordDeliveryDto{
			ConsumerID:        f.consumer.ID.Hex(),
			EmployeeID:        f.employee.ID.Hex(),
			DeliveryDate:      "2026-08-20",
			QuantityDelivered: 10.01,
		})
		assertErrorCode(t, err, cErr.QUOTA_EXCEEDED)
		if allocation := f.entry.AllocationFor(f.employee.ID); allocation.RemainingQuantity != 10 {
			t.Errorf("remaining mutated on rejection: %v", allocation.RemainingQuantity)
		}
	})

	t.Run("exact remaining allowed", func(t *testing.T) {
		f := newDeliveryFixture(t)
		_, err := f.svc.RecordDelivery(ctx, adminPrincipal(), &dto.RecordDeliveryDto{
			ConsumerID:        f.consumer.ID.Hex(),
			EmployeeID:        f.employee.ID.Hex(),
			DeliveryDate:      "2026-08-20",
			QuantityDelivered: 10,
		})
		if err != nil {
			t.Fatalf("RecordDelivery at exact remaining: %v", err)
		}
		if allocation := f.entry.AllocationFor(f.employee.ID); allocation.RemainingQuantity != 0 {
			t.Errorf("remaining = %v, want 0", allocation.RemainingQuantity)
		}
	})

	t.Run("not assigned", func(t *testing.T) {
		f := newDeliveryFixture(t)
		stranger := &model.Consumer{ID: primitive.NewObjectID(), FullName: "Geeta", PerLiterRate: 60, IsActive: true}
		f.svc.consumerRepo.(*fakeConsumerStore).consumers[stranger.ID] = stranger
		_, err := f.svc.RecordDelivery(ctx, adminPrincipal(), &dto.RecordDeliveryDto{
			ConsumerID:        stranger.ID.Hex(),
			EmployeeID:        f.employee.ID.Hex(),
			DeliveryDate:      "2026-08-20",
			QuantityDelivered: 1,
		})
		assertErrorCode(t, err, cErr.NOT_ASSIGNED)
	})

	t.Run("duplicate same consumer same day", func(t *testing.T) {
		f := newDeliveryFixture(t)
		req := &dto.RecordDeliveryDto{
			ConsumerID:        f.consumer.ID.Hex(),
			EmployeeID:        f.employee.ID.Hex(),
			DeliveryDate:      "2026-08-20",
			QuantityDelivered: 2,
		}
		if _, err := f.svc.RecordDelivery(ctx, adminPrincipal(), req); err != nil {
			t.Fatalf("first RecordDelivery: %v", err)
		}
		_, err := f.svc.RecordDelivery(ctx, adminPrincipal(), req)
		assertErrorCode(t, err, cErr.DUPLICATE_DELIVERY)
		if allocation := f.entry.AllocationFor(f.employee.ID); allocation.RemainingQuantity != 8 {
			t.Errorf("remaining = %v, want 8 (only first delivery consumed)", allocation.RemainingQuantity)
		}
	})

	t.Run("no milk entry that day passes without consuming", func(t *testing.T) {
		f := newDeliveryFixture(t)
		resp, err := f.svc.RecordDelivery(ctx, adminPrincipal(), &dto.RecordDeliveryDto{
			ConsumerID:        f.consumer.ID.Hex(),
			EmployeeID:        f.employee.ID.Hex(),
			DeliveryDate:      "2026-08-21",
			QuantityDelivered: 4,
		})
		if err != nil {
			t.Fatalf("RecordDelivery without entry: %v", err)
		}
		if resp.QuantityDelivered != 4 {
			t.Errorf("QuantityDelivered = %v", resp.QuantityDelivered)
		}
	})

	t.Run("no allocation for employee passes without consuming", func(t *testing.T) {
		f := newDeliveryFixture(t)
		other := activeEmployee("Suresh")
		other.MobileNumber = "9876543211"
		f.svc.employeeRepo.(*fakeEmployeeStore).employees[other.ID] = other
		f.svc.assignmentRepo.(*fakeAssignmentStore).assignments[primitive.NewObjectID()] = &model.Assignment{
			ID: primitive.NewObjectID(), EmployeeID: other.ID, ConsumerID: f.consumer.ID, IsActive: true,
		}
		if _, err := f.svc.RecordDelivery(ctx, adminPrincipal(), &dto.RecordDeliveryDto{
			ConsumerID:        f.consumer.ID.Hex(),
			EmployeeID:        other.ID.Hex(),
			DeliveryDate:      "2026-08-20",
			QuantityDelivered: 4,
		}); err != nil {
			t.Fatalf("RecordDelivery without allocation: %v", err)
		}
		if allocation := f.entry.AllocationFor(f.employee.ID); allocation.RemainingQuantity != 10 {
			t.Errorf("unrelated allocation touched: %v", allocation.RemainingQuantity)
		}
	})

	t.Run("restores allocation when insert fails", func(t *testing.T) {
		f := newDeliveryFixture(t)
		f.deliveries.failCreate = context.DeadlineExceeded
		_, err := f.svc.RecordDelivery(ctx, adminPrincipal(), &dto.RecordDeliveryDto{
			ConsumerID:        f.consumer.ID.Hex(),
			EmployeeID:        f.employee.ID.Hex(),
			DeliveryDate:      "2026-08-20",
			QuantityDelivered: 6,
		})
		assertErrorCode(t, err, cErr.DATABASE_ERROR)
		allocation := f.entry.AllocationFor(f.employee.ID)
		if allocation.RemainingQuantity != 10 || allocation.DeliveredQuantity != 0 {
			t.Errorf("allocation not restored: %+v", allocation)
		}
	})

	t.Run("employee principal pinned to own id", func(t *testing.T) {
		f := newDeliveryFixture(t)
		principal := &core.Principal{ID: f.employee.ID, Role: core.RoleEmployee}
		resp, err := f.svc.RecordDelivery(ctx, principal, &dto.RecordDeliveryDto{
			ConsumerID:        f.consumer.ID.Hex(),
			EmployeeID:        primitive.NewObjectID().Hex(), // 應被忽略
			DeliveryDate:      "2026-08-20",
			QuantityDelivered: 2,
		})
		if err != nil {
			t.Fatalf("RecordDelivery as employee: %v", err)
		}
		if resp.EmployeeID != f.employee.ID.Hex() {
			t.Errorf("employeeId = %s, want principal's own %s", resp.EmployeeID, f.employee.ID.Hex())
		}
	})

	t.Run("admin must supply employeeId", func(t *testing.T) {
		f := newDeliveryFixture(t)
		_, err := f.svc.RecordDelivery(ctx, adminPrincipal(), &dto.RecordDeliveryDto{
			ConsumerID:        f.consumer.ID.Hex(),
			DeliveryDate:      "2026-08-20",
			QuantityDelivered: 2,
		})
		assertErrorCode(t, err, cErr.BAD_REQUEST_PARAMS)
	})

	t.Run("inactive employee rejected", func(t *testing.T) {
		f := newDeliveryFixture(t)
		f.employee.IsActive = false
		_, err := f.svc.RecordDelivery(ctx, adminPrincipal(), &dto.RecordDeliveryDto{
			ConsumerID:        f.consumer.ID.Hex(),
			EmployeeID:        f.employee.ID.Hex(),
			DeliveryDate:      "2026-08-20",
			QuantityDelivered: 2,
		})
		assertErrorCode(t, err, cErr.BAD_REQUEST_PARAMS)
	})
}

func TestListDeliveries(t *testing.T) {
	ctx := context.Background()
	f := newDeliveryFixture(t)
	other := primitive.NewObjectID()
	f.deliveries.deliveries = []*model.DailyDelivery{
		{ID: primitive.NewObjectID(), ConsumerID: f.consumer.ID, EmployeeID: f.employee.ID, DeliveryDate: f.day, QuantityDelivered: 2},
		{ID: primitive.NewObjectID(), ConsumerID: primitive.NewObjectID(), EmployeeID: other, DeliveryDate: f.day, QuantityDelivered: 3},
	}

	t.Run("employee sees only own", func(t *testing.T) {
		principal := &core.Principal{ID: f.employee.ID, Role: core.RoleEmployee}
		list, total, err := f.svc.ListDeliveries(ctx, principal, bson.M{}, 1, 20)
		if err != nil {
			t.Fatalf("ListDeliveries: %v", err)
		}
		if total != 1 || len(list) != 1 {
			t.Fatalf("total = %d len = %d, want 1/1", total, len(list))
		}
		if list[0].EmployeeID != f.employee.ID.Hex() {
			t.Errorf("leaked foreign delivery: %+v", list[0])
		}
	})

	t.Run("admin sees all", func(t *testing.T) {
		_, total, err := f.svc.ListDeliveries(ctx, adminPrincipal(), bson.M{}, 1, 20)
		if err != nil {
			t.Fatalf("ListDeliveries: %v", err)
		}
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
	})
}
