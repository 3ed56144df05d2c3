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

type AssignmentService struct {
	trace          *telemetry.Trace
	assignmentRepo AssignmentStore
	employeeRepo   EmployeeStore
	consumerRepo   ConsumerStore
}

func NewAssignmentService(
	trace *telemetry.Trace,
	assignmentRepo AssignmentStore,
	employeeRepo EmployeeStore,
	consumerRepo ConsumerStore,
) *AssignmentService {
	return &AssignmentService{
		trace:          trace,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
		consumerRepo:   consumerRepo,
	}
}

// 建立指派。同一 (employee, consumer) 存在作用中指派時視為重複；
// 存在停用列時沿用該列重新啟用，不另建新列
func (s *AssignmentService) CreateAssignment(ctx context.Context, req *dto.CreateAssignmentDto) (*dto.AssignmentResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	employeeID, err := primitive.ObjectIDFromHex(req.EmployeeID)
	if err != nil {
		return nil, cErr.BadRequestParams("invalid employeeId")
	}
	consumerID, err := primitive.ObjectIDFromHex(req.ConsumerID)
	if err != nil {
		return nil, cErr.BadRequestParams("invalid consumerId")
	}

	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("employee not found")
		}
		return nil, cErr.DatabaseError("database CreateAssignment error")
	}
	if !employee.IsActive {
		return nil, cErr.BadRequestParams("employee is not active")
	}
	consumer, err := s.consumerRepo.GetByID(ctx, consumerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("consumer not found")
		}
		return nil, cErr.DatabaseError("database CreateAssignment error")
	}

	quota := consumer.DailyMilkQuota
	if req.DailyMilkQuota != nil {
		quota = *req.DailyMilkQuota
	}
	assignedDate := validate.DayKey(time.Now())
	if req.AssignedDate != "" {
		assignedDate, err = validate.ParseDate(req.AssignedDate)
		if err != nil {
			return nil, cErr.BadRequestParams("invalid assignedDate")
		}
	}

	existing, err := s.assignmentRepo.FindPair(ctx, employeeID, consumerID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, cErr.DatabaseError("database CreateAssignment error")
	}
	if existing != nil {
		if existing.IsActive {
			return nil, cErr.DuplicateAssignment(fmt.Sprintf(
				"consumer %s is already assigned to employee %s", consumerID.Hex(), employeeID.Hex()))
		}
		// 沿用停用列重新啟用
		update := bson.M{
			"isActive":       true,
			"dailyMilkQuota": quota,
			"assignedDate":   assignedDate,
		}
		if _, err := s.assignmentRepo.UpdateByID(ctx, existing.ID, update); err != nil {
			return nil, cErr.DatabaseError("database CreateAssignment error")
		}
		if err := s.syncConsumerBackRef(ctx, consumerID, &employeeID); err != nil {
			return nil, err
		}
		reactivated, err := s.assignmentRepo.GetByID(ctx, existing.ID)
		if err != nil {
			return nil, cErr.DatabaseError("database CreateAssignment error")
		}
		resp := dto.NewAssignmentResponse(reactivated)
		return &resp, nil
	}

	assignment := &model.Assignment{
		EmployeeID:     employeeID,
		ConsumerID:     consumerID,
		DailyMilkQuota: quota,
		AssignedDate:   assignedDate,
		IsActive:       true,
	}
	created, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// 併發下輸給另一筆同 pair 的寫入
			return nil, cErr.DuplicateAssignment(fmt.Sprintf(
				"consumer %s is already assigned to employee %s", consumerID.Hex(), employeeID.Hex()))
		}
		return nil, cErr.DatabaseError("database CreateAssignment error")
	}
	if err := s.syncConsumerBackRef(ctx, consumerID, &employeeID); err != nil {
		return nil, err
	}
	resp := dto.NewAssignmentResponse(created)
	return &resp, nil
}

// 依 id 查詢（附帶配送員與訂奶戶資訊）
func (s *AssignmentService) GetAssignmentByID(ctx context.Context, id primitive.ObjectID) (*dto.AssignmentResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("assignment not found")
		}
		return nil, cErr.DatabaseError("database GetAssignmentByID error")
	}
	resp := dto.NewAssignmentResponse(assignment)
	s.populate(ctx, &resp, assignment)
	return &resp, nil
}

// 列舉指派（支援 employeeId / consumerId / isActive 篩選）
func (s *AssignmentService) ListAssignments(ctx context.Context, filter bson.M, page, limit int64) ([]dto.AssignmentResponseDto, int64, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	opts := core.ListOptions{
		Filter: filter,
		Page:   page,
		Limit:  limit,
		Sort:   bson.D{{Key: "assignedDate", Value: -1}},
	}
	assignments, err := s.assignmentRepo.List(ctx, opts)
	if err != nil {
		return nil, 0, cErr.DatabaseError("database ListAssignments error")
	}
	total, err := s.assignmentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, cErr.DatabaseError("database ListAssignments count error")
	}

	resp := make([]dto.AssignmentResponseDto, len(assignments))
	for i, a := range assignments {
		resp[i] = dto.NewAssignmentResponse(a)
		s.populate(ctx, &resp[i], a)
	}
	return resp, total, nil
}

// MyAssignments 配送員本人的作用中指派
func (s *AssignmentService) MyAssignments(ctx context.Context, employeeID primitive.ObjectID) ([]dto.AssignmentResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	filter := bson.M{"employeeId": employeeID, "isActive": true}
	assignments, err := s.assignmentRepo.List(ctx, core.ListOptions{Filter: filter})
	if err != nil {
		return nil, cErr.DatabaseError("database MyAssignments error")
	}
	resp := make([]dto.AssignmentResponseDto, len(assignments))
	for i, a := range assignments {
		resp[i] = dto.NewAssignmentResponse(a)
		s.populate(ctx, &resp[i], a)
	}
	return resp, nil
}

// 更新指派。停用時清掉訂奶戶的 assignedEmployee 反向參照；
// 換配送員時驗證新配送員並改指反向參照
func (s *AssignmentService) UpdateAssignmentByID(ctx context.Context, id primitive.ObjectID, req *dto.UpdateAssignmentDto) (*dto.AssignmentResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("assignment not found")
		}
		return nil, cErr.DatabaseError("database UpdateAssignmentByID error")
	}

	update := bson.M{}
	newEmployeeID := assignment.EmployeeID
	if req.EmployeeID != nil {
		newEmployeeID, err = primitive.ObjectIDFromHex(*req.EmployeeID)
		if err != nil {
			return nil, cErr.BadRequestParams("invalid employeeId")
		}
		if newEmployeeID != assignment.EmployeeID {
			employee, err := s.employeeRepo.GetByID(ctx, newEmployeeID)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return nil, cErr.NotFound("employee not found")
				}
				return nil, cErr.DatabaseError("database UpdateAssignmentByID error")
			}
			if !employee.IsActive {
				return nil, cErr.BadRequestParams("employee is not active")
			}
			// (employeeId, consumerId) 有唯一索引，換到已有指派的 pair 會撞索引
			existing, err := s.assignmentRepo.FindPair(ctx, newEmployeeID, assignment.ConsumerID)
			if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
				return nil, cErr.DatabaseError("database UpdateAssignmentByID error")
			}
			if existing != nil {
				return nil, cErr.DuplicateAssignment(fmt.Sprintf(
					"consumer %s is already assigned to employee %s", assignment.ConsumerID.Hex(), newEmployeeID.Hex()))
			}
			update["employeeId"] = newEmployeeID
		}
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

	if _, err := s.assignmentRepo.UpdateByID(ctx, id, update); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, cErr.DuplicateAssignment(fmt.Sprintf(
				"consumer %s is already assigned to employee %s", assignment.ConsumerID.Hex(), newEmployeeID.Hex()))
		}
		return nil, cErr.DatabaseError("database UpdateAssignmentByID error")
	}

	if req.IsActive != nil || (req.EmployeeID != nil && newEmployeeID != assignment.EmployeeID) {
		active := assignment.IsActive
		if req.IsActive != nil {
			active = *req.IsActive
		}
		var backRef *primitive.ObjectID
		if active {
			backRef = &newEmployeeID
		}
		if err := s.syncConsumerBackRef(ctx, assignment.ConsumerID, backRef); err != nil {
			return nil, err
		}
	}
	return s.GetAssignmentByID(ctx, id)
}

// 刪除指派並清掉反向參照
func (s *AssignmentService) DeleteAssignmentByID(ctx context.Context, id primitive.ObjectID) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cErr.NotFound("assignment not found")
		}
		return cErr.DatabaseError("database DeleteAssignmentByID error")
	}

	if err := s.assignmentRepo.DeleteByID(ctx, id); err != nil {
		return cErr.DatabaseError("database DeleteAssignmentByID error")
	}
	return s.syncConsumerBackRef(ctx, assignment.ConsumerID, nil)
}

// syncConsumerBackRef 維護 Consumer.AssignedEmployee 與指派狀態一致
func (s *AssignmentService) syncConsumerBackRef(ctx context.Context, consumerID primitive.ObjectID, employeeID *primitive.ObjectID) error {
	update := bson.M{"assignedEmployee": nil}
	if employeeID != nil {
		update["assignedEmployee"] = *employeeID
	}
	if _, err := s.consumerRepo.UpdateByID(ctx, consumerID, update); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return cErr.DatabaseError("database sync consumer back-ref error")
	}
	return nil
}

// populate 盡力填入關聯資訊，查不到就留空
func (s *AssignmentService) populate(ctx context.Context, resp *dto.AssignmentResponseDto, assignment *model.Assignment) {
	if employee, err := s.employeeRepo.GetByID(ctx, assignment.EmployeeID); err == nil {
		e := dto.NewEmployeeResponse(employee)
		resp.Employee = &e
	}
	if consumer, err := s.consumerRepo.GetByID(ctx, assignment.ConsumerID); err == nil {
		c := dto.NewConsumerResponse(consumer)
		resp.Consumer = &c
	}
}
