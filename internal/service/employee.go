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
	"milkline/utils/password"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type EmployeeService struct {
	trace        *telemetry.Trace
	employeeRepo EmployeeStore
}

func NewEmployeeService(trace *telemetry.Trace, employeeRepo EmployeeStore) *EmployeeService {
	return &EmployeeService{trace: trace, employeeRepo: employeeRepo}
}

// 新增配送員。未指定密碼時以手機號作為初始密碼
func (s *EmployeeService) CreateEmployee(ctx context.Context, req *dto.CreateEmployeeDto) (*dto.EmployeeResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	rawPassword := req.Password
	if rawPassword == "" {
		rawPassword = req.MobileNumber
	}
	hash, err := password.Hash(rawPassword)
	if err != nil {
		return nil, cErr.InternalServer("hash password error")
	}

	employee := &model.Employee{
		Name:         req.Name,
		MobileNumber: req.MobileNumber,
		PasswordHash: hash,
		AssignedArea: req.AssignedArea,
		IsActive:     true,
	}
	created, err := s.employeeRepo.Create(ctx, employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, cErr.DuplicateEntry(fmt.Sprintf("employee with mobile number %s already exists", req.MobileNumber))
		}
		return nil, cErr.DatabaseError("database CreateEmployee error")
	}
	resp := dto.NewEmployeeResponse(created)
	return &resp, nil
}

// 依 id 查詢
func (s *EmployeeService) GetEmployeeByID(ctx context.Context, id primitive.ObjectID) (*dto.EmployeeResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("employee not found")
		}
		return nil, cErr.DatabaseError("database GetEmployeeByID error")
	}
	resp := dto.NewEmployeeResponse(employee)
	return &resp, nil
}

// 列舉配送員（支援分頁與 isActive / area 篩選）
func (s *EmployeeService) ListEmployees(ctx context.Context, filter bson.M, page, limit int64) ([]dto.EmployeeResponseDto, int64, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	opts := core.ListOptions{
		Filter: filter,
		Page:   page,
		Limit:  limit,
		Sort:   bson.D{{Key: "createdAt", Value: -1}},
	}
	employees, err := s.employeeRepo.List(ctx, opts)
	if err != nil {
		return nil, 0, cErr.DatabaseError("database ListEmployees error")
	}
	total, err := s.employeeRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, cErr.DatabaseError("database ListEmployees count error")
	}

	resp := make([]dto.EmployeeResponseDto, len(employees))
	for i, e := range employees {
		resp[i] = dto.NewEmployeeResponse(e)
	}
	return resp, total, nil
}

// 更新配送員基本資訊
func (s *EmployeeService) UpdateEmployeeByID(ctx context.Context, id primitive.ObjectID, req *dto.UpdateEmployeeDto) (*dto.EmployeeResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.MobileNumber != nil {
		update["mobileNumber"] = *req.MobileNumber
	}
	if req.AssignedArea != nil {
		update["assignedArea"] = *req.AssignedArea
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}
	if len(update) == 0 {
		return nil, cErr.BadRequestParams("no fields to update")
	}

	if _, err := s.employeeRepo.UpdateByID(ctx, id, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound(fmt.Sprintf("employee with id %s not found", id.Hex()))
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, cErr.DuplicateEntry("mobile number already in use")
		}
		return nil, cErr.DatabaseError("database UpdateEmployeeByID error")
	}
	return s.GetEmployeeByID(ctx, id)
}

// 重設密碼（管理員操作）
func (s *EmployeeService) ResetPassword(ctx context.Context, id primitive.ObjectID, req *dto.ResetPasswordDto) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	hash, err := password.Hash(req.Password)
	if err != nil {
		return cErr.InternalServer("hash password error")
	}
	if _, err := s.employeeRepo.UpdateByID(ctx, id, bson.M{"passwordHash": hash}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cErr.NotFound(fmt.Sprintf("employee with id %s not found", id.Hex()))
		}
		return cErr.DatabaseError("database ResetPassword error")
	}
	return nil
}

// 刪除配送員。歷史指派與配送記錄保留
func (s *EmployeeService) DeleteEmployeeByID(ctx context.Context, id primitive.ObjectID) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if err := s.employeeRepo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cErr.NotFound(fmt.Sprintf("employee with id %s not found", id.Hex()))
		}
		return cErr.DatabaseError("database DeleteEmployeeByID error")
	}
	return nil
}
