package service

import (
	"context"
	"testing"
	"time"

	"milkline/internal/database/mongodb/model"
	"milkline/internal/dto"
	cErr "milkline/internal/pkg/error"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func assignmentFixture(t *testing.T) (*AssignmentService, *model.Employee, *model.Consumer, *fakeAssignmentStore, *fakeConsumerStore) {
	t.Helper()
	employee := activeEmployee("Ravi")
	consumer := &model.Consumer{
		ID:             primitive.NewObjectID(),
		FullName:       "Lakshmi",
		Area:           "North",
		PerLiterRate:   60,
		DailyMilkQuota: 5,
		IsActive:       true,
	}
	assignments := newFakeAssignmentStore()
	consumers := newFakeConsumerStore(consumer)
	svc := NewAssignmentService(testTrace(t), assignments, newFakeEmployeeStore(employee), consumers)
	return svc, employee, consumer, assignments, consumers
}

func TestCreateAssignment(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults quota from consumer and syncs back-ref", func(t *testing.T) {
		svc, employee, consumer, _, consumers := assignmentFixture(t)
		resp, err := svc.CreateAssignment(ctx, &dto.CreateAssignmentDto{
			EmployeeID: employee.ID.Hex(),
			ConsumerID: consumer.ID.Hex(),
		})
		if err != nil {
			t.Fatalf("CreateAssignment: %v", err)
		}
		if resp.DailyMilkQuota != 5 {
			t.Errorf("quota = %v, want consumer default 5", resp.DailyMilkQuota)
		}
		if !resp.IsActive {
			t.Error("new assignment should be active")
		}
		backRef := consumers.consumers[consumer.ID].AssignedEmployee
		if backRef == nil || *backRef != employee.ID {
			t.Errorf("consumer back-ref = %v, want %s", backRef, employee.ID.Hex())
		}
	})

	t.Run("active pair is duplicate", func(t *testing.T) {
		svc, employee, consumer, _, _ := assignmentFixture(t)
		req := &dto.CreateAssignmentDto{EmployeeID: employee.ID.Hex(), ConsumerID: consumer.ID.Hex()}
		if _, err := svc.CreateAssignment(ctx, req); err != nil {
			t.Fatalf("first CreateAssignment: %v", err)
		}
		_, err := svc.CreateAssignment(ctx, req)
		assertErrorCode(t, err, cErr.DUPLICATE_ASSIGNMENT)
	})

	t.Run("inactive pair reactivated in place", func(t *testing.T) {
		svc, employee, consumer, assignments, _ := assignmentFixture(t)
		stale := &model.Assignment{
			ID:             primitive.NewObjectID(),
			EmployeeID:     employee.ID,
			ConsumerID:     consumer.ID,
			DailyMilkQuota: 3,
			AssignedDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:       false,
		}
		assignments.assignments[stale.ID] = stale

		quota := 7.5
		resp, err := svc.CreateAssignment(ctx, &dto.CreateAssignmentDto{
			EmployeeID:     employee.ID.Hex(),
			ConsumerID:     consumer.ID.Hex(),
			DailyMilkQuota: &quota,
			AssignedDate:   "2026-08-01",
		})
		if err != nil {
			t.Fatalf("CreateAssignment reactivate: %v", err)
		}
		if resp.ID != stale.ID.Hex() {
			t.Errorf("created new row %s, want reuse of %s", resp.ID, stale.ID.Hex())
		}
		if !resp.IsActive || resp.DailyMilkQuota != 7.5 {
			t.Errorf("reactivated row = %+v", resp)
		}
		if len(assignments.assignments) != 1 {
			t.Errorf("rows = %d, want 1", len(assignments.assignments))
		}
	})

	t.Run("inactive employee rejected", func(t *testing.T) {
		svc, employee, consumer, _, _ := assignmentFixture(t)
		employee.IsActive = false
		_, err := svc.CreateAssignment(ctx, &dto.CreateAssignmentDto{
			EmployeeID: employee.ID.Hex(),
			ConsumerID: consumer.ID.Hex(),
		})
		assertErrorCode(t, err, cErr.BAD_REQUEST_PARAMS)
	})

	t.Run("unknown consumer rejected", func(t *testing.T) {
		svc, employee, _, _, _ := assignmentFixture(t)
		_, err := svc.CreateAssignment(ctx, &dto.CreateAssignmentDto{
			EmployeeID: employee.ID.Hex(),
			ConsumerID: primitive.NewObjectID().Hex(),
		})
		assertErrorCode(t, err, cErr.NOT_FOUND)
	})
}

func TestUpdateAssignment(t *testing.T) {
	ctx := context.Background()
	svc, employee, consumer, _, consumers := assignmentFixture(t)
	created, err := svc.CreateAssignment(ctx, &dto.CreateAssignmentDto{
		EmployeeID: employee.ID.Hex(),
		ConsumerID: consumer.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}
	id, _ := primitive.ObjectIDFromHex(created.ID)

	t.Run("deactivate clears back-ref", func(t *testing.T) {
		inactive := false
		resp, err := svc.UpdateAssignmentByID(ctx, id, &dto.UpdateAssignmentDto{IsActive: &inactive})
		if err != nil {
			t.Fatalf("UpdateAssignmentByID: %v", err)
		}
		if resp.IsActive {
			t.Error("assignment still active")
		}
		if consumers.consumers[consumer.ID].AssignedEmployee != nil {
			t.Error("back-ref not cleared on deactivate")
		}
	})

	t.Run("reactivate restores back-ref", func(t *testing.T) {
		active := true
		if _, err := svc.UpdateAssignmentByID(ctx, id, &dto.UpdateAssignmentDto{IsActive: &active}); err != nil {
			t.Fatalf("UpdateAssignmentByID: %v", err)
		}
		backRef := consumers.consumers[consumer.ID].AssignedEmployee
		if backRef == nil || *backRef != employee.ID {
			t.Errorf("back-ref = %v, want %s", backRef, employee.ID.Hex())
		}
	})

	t.Run("empty update rejected", func(t *testing.T) {
		_, err := svc.UpdateAssignmentByID(ctx, id, &dto.UpdateAssignmentDto{})
		assertErrorCode(t, err, cErr.BAD_REQUEST_PARAMS)
	})
}

func TestReassignEmployee(t *testing.T) {
	ctx := context.Background()
	first := activeEmployee("Ravi")
	second := activeEmployee("Suresh")
	retired := activeEmployee("Mohan")
	retired.IsActive = false
	consumer := &model.Consumer{
		ID: primitive.NewObjectID(), FullName: "Lakshmi", PerLiterRate: 60, DailyMilkQuota: 5, IsActive: true,
	}
	other := &model.Consumer{
		ID: primitive.NewObjectID(), FullName: "Meena", PerLiterRate: 60, DailyMilkQuota: 3, IsActive: true,
	}
	assignments := newFakeAssignmentStore()
	consumers := newFakeConsumerStore(consumer, other)
	svc := NewAssignmentService(testTrace(t), assignments, newFakeEmployeeStore(first, second, retired), consumers)

	created, err := svc.CreateAssignment(ctx, &dto.CreateAssignmentDto{
		EmployeeID: first.ID.Hex(),
		ConsumerID: consumer.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}
	id, _ := primitive.ObjectIDFromHex(created.ID)

	t.Run("re-points consumer back-ref", func(t *testing.T) {
		target := second.ID.Hex()
		resp, err := svc.UpdateAssignmentByID(ctx, id, &dto.UpdateAssignmentDto{EmployeeID: &target})
		if err != nil {
			t.Fatalf("UpdateAssignmentByID: %v", err)
		}
		if resp.EmployeeID != second.ID.Hex() {
			t.Errorf("assignment employee = %s, want %s", resp.EmployeeID, second.ID.Hex())
		}
		backRef := consumers.consumers[consumer.ID].AssignedEmployee
		if backRef == nil || *backRef != second.ID {
			t.Errorf("back-ref = %v, want %s", backRef, second.ID.Hex())
		}
	})

	t.Run("target pair already assigned", func(t *testing.T) {
		if _, err := svc.CreateAssignment(ctx, &dto.CreateAssignmentDto{
			EmployeeID: first.ID.Hex(),
			ConsumerID: consumer.ID.Hex(),
		}); err != nil {
			t.Fatalf("CreateAssignment: %v", err)
		}
		// consumer 已同時有 first 與 second 的指派列，把 second 那列改回 first 會撞 pair
		target := first.ID.Hex()
		_, err := svc.UpdateAssignmentByID(ctx, id, &dto.UpdateAssignmentDto{EmployeeID: &target})
		assertErrorCode(t, err, cErr.DUPLICATE_ASSIGNMENT)
	})

	t.Run("inactive employee rejected", func(t *testing.T) {
		target := retired.ID.Hex()
		_, err := svc.UpdateAssignmentByID(ctx, id, &dto.UpdateAssignmentDto{EmployeeID: &target})
		assertErrorCode(t, err, cErr.BAD_REQUEST_PARAMS)
	})

	t.Run("unknown employee rejected", func(t *testing.T) {
		target := primitive.NewObjectID().Hex()
		_, err := svc.UpdateAssignmentByID(ctx, id, &dto.UpdateAssignmentDto{EmployeeID: &target})
		assertErrorCode(t, err, cErr.NOT_FOUND)
	})

	t.Run("same employee is a no-op field", func(t *testing.T) {
		current, err := svc.GetAssignmentByID(ctx, id)
		if err != nil {
			t.Fatalf("GetAssignmentByID: %v", err)
		}
		target := current.EmployeeID
		_, err = svc.UpdateAssignmentByID(ctx, id, &dto.UpdateAssignmentDto{EmployeeID: &target})
		assertErrorCode(t, err, cErr.BAD_REQUEST_PARAMS)
	})
}

func TestDeleteAssignment(t *testing.T) {
	ctx := context.Background()
	svc, employee, consumer, assignments, consumers := assignmentFixture(t)
	created, err := svc.CreateAssignment(ctx, &dto.CreateAssignmentDto{
		EmployeeID: employee.ID.Hex(),
		ConsumerID: consumer.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}
	id, _ := primitive.ObjectIDFromHex(created.ID)

	if err := svc.DeleteAssignmentByID(ctx, id); err != nil {
		t.Fatalf("DeleteAssignmentByID: %v", err)
	}
	if len(assignments.assignments) != 0 {
		t.Error("assignment row not removed")
	}
	if consumers.consumers[consumer.ID].AssignedEmployee != nil {
		t.Error("back-ref not cleared on delete")
	}

	err = svc.DeleteAssignmentByID(ctx, id)
	assertErrorCode(t, err, cErr.NOT_FOUND)
}

func TestMyAssignments(t *testing.T) {
	ctx := context.Background()
	svc, employee, consumer, assignments, _ := assignmentFixture(t)
	mine := &model.Assignment{
		ID: primitive.NewObjectID(), EmployeeID: employee.ID, ConsumerID: consumer.ID, IsActive: true,
	}
	disabled := &model.Assignment{
		ID: primitive.NewObjectID(), EmployeeID: employee.ID, ConsumerID: primitive.NewObjectID(), IsActive: false,
	}
	foreign := &model.Assignment{
		ID: primitive.NewObjectID(), EmployeeID: primitive.NewObjectID(), ConsumerID: consumer.ID, IsActive: true,
	}
	assignments.assignments[mine.ID] = mine
	assignments.assignments[disabled.ID] = disabled
	assignments.assignments[foreign.ID] = foreign

	list, err := svc.MyAssignments(ctx, employee.ID)
	if err != nil {
		t.Fatalf("MyAssignments: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list = %d, want 1 (active, own only)", len(list))
	}
	if list[0].ID != mine.ID.Hex() {
		t.Errorf("unexpected assignment %s", list[0].ID)
	}
	if list[0].Consumer == nil || list[0].Consumer.FullName != "Lakshmi" {
		t.Errorf("consumer info not populated: %+v", list[0].Consumer)
	}
}
