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

type MilkEntryService struct {
	trace        *telemetry.Trace
	metric       *telemetry.Metric
	milkRepo     MilkEntryStore
	employeeRepo EmployeeStore
}

func NewMilkEntryService(
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	milkRepo MilkEntryStore,
	employeeRepo EmployeeStore,
) *MilkEntryService {
	return &MilkEntryService{trace: trace, metric: metric, milkRepo: milkRepo, employeeRepo: employeeRepo}
}

// 建立每日集乳記錄。同日已有記錄回 DuplicateEntry；
// 分配總量超過集乳量回 OverAllocation（等於或少於皆允許）
func (s *MilkEntryService) CreateEntry(ctx context.Context, req *dto.CreateMilkEntryDto) (returnedDto *dto.MilkEntryResponseDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	entryDate, err := validate.ParseDate(req.EntryDate)
	if err != nil {
		return nil, cErr.BadRequestParams("invalid entryDate")
	}

	var totalAllocated float64
	seen := make(map[primitive.ObjectID]bool, len(req.Allocations))
	allocations := make([]model.EmployeeAllocation, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		employeeID, err := primitive.ObjectIDFromHex(a.EmployeeID)
		if err != nil {
			return nil, cErr.BadRequestParams("invalid employeeId in allocations")
		}
		if seen[employeeID] {
			return nil, cErr.BadRequestParams(fmt.Sprintf("employee %s allocated twice", a.EmployeeID))
		}
		seen[employeeID] = true

		employee, err := s.employeeRepo.GetByID(ctx, employeeID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, cErr.NotFound(fmt.Sprintf("employee %s not found", a.EmployeeID))
			}
			return nil, cErr.DatabaseError("database CreateEntry error")
		}
		if !employee.IsActive {
			return nil, cErr.BadRequestParams(fmt.Sprintf("employee %s is not active", a.EmployeeID))
		}

		totalAllocated += a.AllocatedQuantity
		allocations = append(allocations, model.EmployeeAllocation{
			EmployeeID:        employeeID,
			AllocatedQuantity: a.AllocatedQuantity,
			DeliveredQuantity: 0,
			RemainingQuantity: a.AllocatedQuantity,
		})
	}

	s.trace.ApplyTraceAttributes(span, core.TraceMilkEntryMeta{
		Date:           entryDate.Format("2006-01-02"),
		TotalCollected: req.TotalMilkCollected,
		TotalAllocated: totalAllocated,
		Allocations:    len(allocations),
	})

	if totalAllocated > req.TotalMilkCollected {
		return nil, cErr.OverAllocation(fmt.Sprintf(
			"total allocated %.2fL exceeds total collected %.2fL", totalAllocated, req.TotalMilkCollected))
	}

	entry := &model.DailyMilkEntry{
		EntryDate:           entryDate,
		TotalMilkCollected:  req.TotalMilkCollected,
		EmployeeAllocations: allocations,
	}
	created, err := s.milkRepo.Create(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, cErr.DuplicateEntry(fmt.Sprintf(
				"milk entry for %s already exists", entryDate.Format("2006-01-02")))
		}
		return nil, cErr.DatabaseError("database CreateEntry error")
	}
	resp := dto.NewMilkEntryResponse(created)
	s.populateNames(ctx, &resp)
	return &resp, nil
}

// 依日期查詢
func (s *MilkEntryService) GetEntryByDate(ctx context.Context, date time.Time) (*dto.MilkEntryResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	entry, err := s.milkRepo.GetByDate(ctx, validate.DayKey(date))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound(fmt.Sprintf("milk entry for %s not found", date.Format("2006-01-02")))
		}
		return nil, cErr.DatabaseError("database GetEntryByDate error")
	}
	resp := dto.NewMilkEntryResponse(entry)
	s.populateNames(ctx, &resp)
	return &resp, nil
}

// 列舉集乳記錄（日期新到舊，可給 from/to 篩區間）
func (s *MilkEntryService) ListEntries(ctx context.Context, from, to time.Time, page, limit int64) ([]dto.MilkEntryResponseDto, int64, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	filter := bson.M{}
	dateRange := bson.M{}
	if !from.IsZero() {
		dateRange["$gte"] = validate.DayKey(from)
	}
	if !to.IsZero() {
		dateRange["$lte"] = validate.DayKey(to)
	}
	if len(dateRange) > 0 {
		filter["entryDate"] = dateRange
	}

	opts := core.ListOptions{
		Filter: filter,
		Page:   page,
		Limit:  limit,
		Sort:   bson.D{{Key: "entryDate", Value: -1}},
	}
	entries, err := s.milkRepo.List(ctx, opts)
	if err != nil {
		return nil, 0, cErr.DatabaseError("database ListEntries error")
	}
	total, err := s.milkRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, cErr.DatabaseError("database ListEntries count error")
	}

	resp := make([]dto.MilkEntryResponseDto, len(entries))
	for i, e := range entries {
		resp[i] = dto.NewMilkEntryResponse(e)
		s.populateNames(ctx, &resp[i])
	}
	return resp, total, nil
}

// MyQuota 配送員視角：指定日期（預設今日）自己的份額
func (s *MilkEntryService) MyQuota(ctx context.Context, employeeID primitive.ObjectID, date time.Time) (*dto.MyQuotaResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if date.IsZero() {
		date = time.Now()
	}
	day := validate.DayKey(date)

	entry, err := s.milkRepo.GetByDate(ctx, day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound(fmt.Sprintf("no milk entry for %s", day.Format("2006-01-02")))
		}
		return nil, cErr.DatabaseError("database MyQuota error")
	}
	allocation := entry.AllocationFor(employeeID)
	if allocation == nil {
		return nil, cErr.NotFound(fmt.Sprintf("no allocation for you on %s", day.Format("2006-01-02")))
	}
	return &dto.MyQuotaResponseDto{
		Date:              entry.EntryDate,
		AllocatedQuantity: allocation.AllocatedQuantity,
		DeliveredQuantity: allocation.DeliveredQuantity,
		RemainingQuantity: allocation.RemainingQuantity,
		IsVerified:        allocation.IsVerified,
		VerifiedAt:        allocation.VerifiedAt,
	}, nil
}

// VerifyAllocation 核銷指定日期 / 配送員份額。只記核銷事實，不鎖後續配送
func (s *MilkEntryService) VerifyAllocation(ctx context.Context, req *dto.VerifyAllocationDto) (*dto.MilkEntryResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	entryDate, err := validate.ParseDate(req.EntryDate)
	if err != nil {
		return nil, cErr.BadRequestParams("invalid entryDate")
	}
	employeeID, err := primitive.ObjectIDFromHex(req.EmployeeID)
	if err != nil {
		return nil, cErr.BadRequestParams("invalid employeeId")
	}

	if err := s.milkRepo.MarkVerified(ctx, entryDate, employeeID, time.Now().UTC()); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound(fmt.Sprintf(
				"no allocation for employee %s on %s", req.EmployeeID, entryDate.Format("2006-01-02")))
		}
		return nil, cErr.DatabaseError("database VerifyAllocation error")
	}
	if s.metric.AllocationsVerifiedTotal != nil {
		s.metric.AllocationsVerifiedTotal.WithLabelValues("verified").Inc()
	}
	return s.GetEntryByDate(ctx, entryDate)
}

// populateNames 盡力補上配送員姓名，查不到就留空
func (s *MilkEntryService) populateNames(ctx context.Context, resp *dto.MilkEntryResponseDto) {
	for i := range resp.EmployeeAllocations {
		id, err := primitive.ObjectIDFromHex(resp.EmployeeAllocations[i].EmployeeID)
		if err != nil {
			continue
		}
		if employee, err := s.employeeRepo.GetByID(ctx, id); err == nil {
			resp.EmployeeAllocations[i].EmployeeName = employee.Name
		}
	}
}
