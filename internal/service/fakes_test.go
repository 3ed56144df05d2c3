package service

import (
	"context"
	"testing"
	"time"

	"milkline/internal/core"
	"milkline/internal/database/mongodb/model"
	"milkline/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// 測試用記憶體實作，語義對齊 mongodb/repository：
// 找不到回 mongo.ErrNoDocuments、唯一鍵衝突回 duplicate key error

func testTrace(t *testing.T) *telemetry.Trace {
	t.Helper()
	trace, err := telemetry.NewTrace(nil)
	if err != nil {
		t.Fatalf("NewTrace: %v", err)
	}
	return trace
}

func testMetric() *telemetry.Metric {
	return telemetry.NewMetric(nil)
}

func dupKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{
		{Code: 11000, Message: "E11000 duplicate key error"},
	}}
}

// ─── employees ─────────────────────────────────────────────────────────────────

type fakeEmployeeStore struct {
	employees map[primitive.ObjectID]*model.Employee
}

func newFakeEmployeeStore(list ...*model.Employee) *fakeEmployeeStore {
	s := &fakeEmployeeStore{employees: make(map[primitive.ObjectID]*model.Employee)}
	for _, e := range list {
		s.employees[e.ID] = e
	}
	return s
}

func (s *fakeEmployeeStore) Create(ctx context.Context, employee *model.Employee) (*model.Employee, error) {
	for _, existing := range s.employees {
		if existing.MobileNumber == employee.MobileNumber {
			return nil, dupKeyErr()
		}
	}
	if employee.ID.IsZero() {
		employee.ID = primitive.NewObjectID()
	}
	employee.CreatedAt = time.Now().UTC()
	employee.UpdatedAt = employee.CreatedAt
	s.employees[employee.ID] = employee
	return employee, nil
}

func (s *fakeEmployeeStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Employee, error) {
	employee, ok := s.employees[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return employee, nil
}

func (s *fakeEmployeeStore) GetByMobile(ctx context.Context, mobileNumber string) (*model.Employee, error) {
	for _, employee := range s.employees {
		if employee.MobileNumber == mobileNumber {
			return employee, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeEmployeeStore) List(ctx context.Context, opts core.ListOptions) ([]*model.Employee, error) {
	out := make([]*model.Employee, 0, len(s.employees))
	for _, employee := range s.employees {
		out = append(out, employee)
	}
	return out, nil
}

func (s *fakeEmployeeStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(s.employees)), nil
}

func (s *fakeEmployeeStore) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error) {
	employee, ok := s.employees[id]
	if !ok {
		return 0, mongo.ErrNoDocuments
	}
	for key, value := range update {
		switch key {
		case "name":
			employee.Name = value.(string)
		case "mobileNumber":
			employee.MobileNumber = value.(string)
		case "assignedArea":
			employee.AssignedArea = value.(string)
		case "isActive":
			employee.IsActive = value.(bool)
		case "passwordHash":
			employee.PasswordHash = value.(string)
		}
	}
	employee.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (s *fakeEmployeeStore) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.employees[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.employees, id)
	return nil
}

// ─── consumers ─────────────────────────────────────────────────────────────────

type fakeConsumerStore struct {
	consumers map[primitive.ObjectID]*model.Consumer
}

func newFakeConsumerStore(list ...*model.Consumer) *fakeConsumerStore {
	s := &fakeConsumerStore{consumers: make(map[primitive.ObjectID]*model.Consumer)}
	for _, c := range list {
		s.consumers[c.ID] = c
	}
	return s
}

func (s *fakeConsumerStore) Create(ctx context.Context, consumer *model.Consumer) (*model.Consumer, error) {
	if consumer.ID.IsZero() {
		consumer.ID = primitive.NewObjectID()
	}
	consumer.CreatedAt = time.Now().UTC()
	consumer.UpdatedAt = consumer.CreatedAt
	s.consumers[consumer.ID] = consumer
	return consumer, nil
}

func (s *fakeConsumerStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Consumer, error) {
	consumer, ok := s.consumers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return consumer, nil
}

func (s *fakeConsumerStore) List(ctx context.Context, opts core.ListOptions) ([]*model.Consumer, error) {
	out := make([]*model.Consumer, 0, len(s.consumers))
	for _, consumer := range s.consumers {
		if active, ok := opts.Filter["isActive"]; ok && consumer.IsActive != active.(bool) {
			continue
		}
		if area, ok := opts.Filter["area"]; ok && consumer.Area != area.(string) {
			continue
		}
		out = append(out, consumer)
	}
	return out, nil
}

func (s *fakeConsumerStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(s.consumers)), nil
}

func (s *fakeConsumerStore) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error) {
	consumer, ok := s.consumers[id]
	if !ok {
		return 0, mongo.ErrNoDocuments
	}
	for key, value := range update {
		switch key {
		case "assignedEmployee":
			if value == nil {
				consumer.AssignedEmployee = nil
			} else {
				oid := value.(primitive.ObjectID)
				consumer.AssignedEmployee = &oid
			}
		case "perLiterRate":
			consumer.PerLiterRate = value.(float64)
		case "isActive":
			consumer.IsActive = value.(bool)
		}
	}
	consumer.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (s *fakeConsumerStore) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.consumers[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.consumers, id)
	return nil
}

func (s *fakeConsumerStore) DistinctAreas(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	areas := []string{}
	for _, consumer := range s.consumers {
		if !seen[consumer.Area] {
			seen[consumer.Area] = true
			areas = append(areas, consumer.Area)
		}
	}
	return areas, nil
}

// ─── assignments ───────────────────────────────────────────────────────────────

type fakeAssignmentStore struct {
	assignments map[primitive.ObjectID]*model.Assignment
}

func newFakeAssignmentStore(list ...*model.Assignment) *fakeAssignmentStore {
	s := &fakeAssignmentStore{assignments: make(map[primitive.ObjectID]*model.Assignment)}
	for _, a := range list {
		s.assignments[a.ID] = a
	}
	return s
}

func (s *fakeAssignmentStore) Create(ctx context.Context, assignment *model.Assignment) (*model.Assignment, error) {
	for _, existing := range s.assignments {
		if existing.EmployeeID == assignment.EmployeeID && existing.ConsumerID == assignment.ConsumerID {
			return nil, dupKeyErr()
		}
	}
	if assignment.ID.IsZero() {
		assignment.ID = primitive.NewObjectID()
	}
	assignment.CreatedAt = time.Now().UTC()
	assignment.UpdatedAt = assignment.CreatedAt
	s.assignments[assignment.ID] = assignment
	return assignment, nil
}

func (s *fakeAssignmentStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Assignment, error) {
	assignment, ok := s.assignments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	// 回傳複本，對齊真實 mongodb decode 的快照語義
	snapshot := *assignment
	return &snapshot, nil
}

func (s *fakeAssignmentStore) FindPair(ctx context.Context, employeeID, consumerID primitive.ObjectID) (*model.Assignment, error) {
	for _, assignment := range s.assignments {
		if assignment.EmployeeID == employeeID && assignment.ConsumerID == consumerID {
			return assignment, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeAssignmentStore) FindActivePair(ctx context.Context, employeeID, consumerID primitive.ObjectID) (*model.Assignment, error) {
	for _, assignment := range s.assignments {
		if assignment.EmployeeID == employeeID && assignment.ConsumerID == consumerID && assignment.IsActive {
			return assignment, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeAssignmentStore) List(ctx context.Context, opts core.ListOptions) ([]*model.Assignment, error) {
	out := []*model.Assignment{}
	for _, assignment := range s.assignments {
		if employeeID, ok := opts.Filter["employeeId"].(primitive.ObjectID); ok && assignment.EmployeeID != employeeID {
			continue
		}
		if isActive, ok := opts.Filter["isActive"].(bool); ok && assignment.IsActive != isActive {
			continue
		}
		out = append(out, assignment)
	}
	return out, nil
}

func (s *fakeAssignmentStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(s.assignments)), nil
}

func (s *fakeAssignmentStore) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error) {
	assignment, ok := s.assignments[id]
	if !ok {
		return 0, mongo.ErrNoDocuments
	}
	if target, ok := update["employeeId"]; ok {
		for _, existing := range s.assignments {
			if existing.ID != id && existing.EmployeeID == target.(primitive.ObjectID) && existing.ConsumerID == assignment.ConsumerID {
				return 0, dupKeyErr()
			}
		}
	}
	for key, value := range update {
		switch key {
		case "isActive":
			assignment.IsActive = value.(bool)
		case "dailyMilkQuota":
			assignment.DailyMilkQuota = value.(float64)
		case "assignedDate":
			assignment.AssignedDate = value.(time.Time)
		case "employeeId":
			assignment.EmployeeID = value.(primitive.ObjectID)
		}
	}
	assignment.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (s *fakeAssignmentStore) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.assignments[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.assignments, id)
	return nil
}

// ─── daily milk entries ────────────────────────────────────────────────────────

type fakeMilkStore struct {
	entries map[time.Time]*model.DailyMilkEntry
}

func newFakeMilkStore(list ...*model.DailyMilkEntry) *fakeMilkStore {
	s := &fakeMilkStore{entries: make(map[time.Time]*model.DailyMilkEntry)}
	for _, e := range list {
		s.entries[e.EntryDate] = e
	}
	return s
}

func (s *fakeMilkStore) Create(ctx context.Context, entry *model.DailyMilkEntry) (*model.DailyMilkEntry, error) {
	if _, exists := s.entries[entry.EntryDate]; exists {
		return nil, dupKeyErr()
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.CreatedAt = time.Now().UTC()
	entry.UpdatedAt = entry.CreatedAt
	s.entries[entry.EntryDate] = entry
	return entry, nil
}

func (s *fakeMilkStore) GetByDate(ctx context.Context, date time.Time) (*model.DailyMilkEntry, error) {
	entry, ok := s.entries[date]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return entry, nil
}

func (s *fakeMilkStore) List(ctx context.Context, opts core.ListOptions) ([]*model.DailyMilkEntry, error) {
	out := make([]*model.DailyMilkEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry)
	}
	return out, nil
}

func (s *fakeMilkStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(s.entries)), nil
}

func (s *fakeMilkStore) ConsumeAllocation(ctx context.Context, date time.Time, employeeID primitive.ObjectID, quantity float64) (bool, error) {
	entry, ok := s.entries[date]
	if !ok {
		return false, nil
	}
	allocation := entry.AllocationFor(employeeID)
	if allocation == nil || allocation.RemainingQuantity < quantity {
		return false, nil
	}
	allocation.DeliveredQuantity += quantity
	allocation.RemainingQuantity -= quantity
	return true, nil
}

func (s *fakeMilkStore) RestoreAllocation(ctx context.Context, date time.Time, employeeID primitive.ObjectID, quantity float64) error {
	entry, ok := s.entries[date]
	if !ok {
		return mongo.ErrNoDocuments
	}
	allocation := entry.AllocationFor(employeeID)
	if allocation == nil {
		return mongo.ErrNoDocuments
	}
	allocation.DeliveredQuantity -= quantity
	allocation.RemainingQuantity += quantity
	return nil
}

func (s *fakeMilkStore) MarkVerified(ctx context.Context, date time.Time, employeeID primitive.ObjectID, at time.Time) error {
	entry, ok := s.entries[date]
	if !ok {
		return mongo.ErrNoDocuments
	}
	allocation := entry.AllocationFor(employeeID)
	if allocation == nil {
		return mongo.ErrNoDocuments
	}
	allocation.IsVerified = true
	allocation.VerifiedAt = &at
	return nil
}

// ─── daily deliveries ──────────────────────────────────────────────────────────

type fakeDeliveryStore struct {
	deliveries []*model.DailyDelivery
	failCreate error // 設定後下一次 Create 回傳此錯誤
}

func (s *fakeDeliveryStore) Create(ctx context.Context, delivery *model.DailyDelivery) (*model.DailyDelivery, error) {
	if s.failCreate != nil {
		err := s.failCreate
		s.failCreate = nil
		return nil, err
	}
	for _, existing := range s.deliveries {
		if existing.ConsumerID == delivery.ConsumerID && existing.DeliveryDate.Equal(delivery.DeliveryDate) {
			return nil, dupKeyErr()
		}
	}
	if delivery.ID.IsZero() {
		delivery.ID = primitive.NewObjectID()
	}
	if delivery.RecordedAt.IsZero() {
		delivery.RecordedAt = time.Now().UTC()
	}
	s.deliveries = append(s.deliveries, delivery)
	return delivery, nil
}

func (s *fakeDeliveryStore) FindByConsumerAndDate(ctx context.Context, consumerID primitive.ObjectID, date time.Time) (*model.DailyDelivery, error) {
	for _, delivery := range s.deliveries {
		if delivery.ConsumerID == consumerID && delivery.DeliveryDate.Equal(date) {
			return delivery, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeDeliveryStore) List(ctx context.Context, opts core.ListOptions) ([]*model.DailyDelivery, error) {
	return s.matchFilter(opts.Filter), nil
}

func (s *fakeDeliveryStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(s.matchFilter(filter))), nil
}

func (s *fakeDeliveryStore) FindRange(ctx context.Context, filter bson.M) ([]*model.DailyDelivery, error) {
	return s.matchFilter(filter), nil
}

func (s *fakeDeliveryStore) matchFilter(filter bson.M) []*model.DailyDelivery {
	out := []*model.DailyDelivery{}
	for _, delivery := range s.deliveries {
		if consumerID, ok := filter["consumerId"].(primitive.ObjectID); ok && delivery.ConsumerID != consumerID {
			continue
		}
		if employeeID, ok := filter["employeeId"].(primitive.ObjectID); ok && delivery.EmployeeID != employeeID {
			continue
		}
		if dateRange, ok := filter["deliveryDate"].(bson.M); ok {
			if from, ok := dateRange["$gte"].(time.Time); ok && delivery.DeliveryDate.Before(from) {
				continue
			}
			if to, ok := dateRange["$lt"].(time.Time); ok && !delivery.DeliveryDate.Before(to) {
				continue
			}
		}
		out = append(out, delivery)
	}
	return out
}

// ─── system settings ───────────────────────────────────────────────────────────

type fakeSettingsStore struct {
	settings *model.SystemSettings
}

func (s *fakeSettingsStore) Get(ctx context.Context) (*model.SystemSettings, error) {
	if s.settings == nil {
		s.settings = &model.SystemSettings{
			ID:              primitive.NewObjectID(),
			DefaultMilkRate: model.DefaultMilkRate,
			CreatedAt:       time.Now().UTC(),
			UpdatedAt:       time.Now().UTC(),
		}
	}
	return s.settings, nil
}

func (s *fakeSettingsStore) Update(ctx context.Context, update bson.M) (*model.SystemSettings, error) {
	settings, _ := s.Get(ctx)
	if rate, ok := update["defaultMilkRate"].(float64); ok {
		settings.DefaultMilkRate = rate
	}
	settings.UpdatedAt = time.Now().UTC()
	return settings, nil
}

// ─── admins / login limiter ────────────────────────────────────────────────────

type fakeAdminStore struct {
	admins map[primitive.ObjectID]*model.Admin
}

func newFakeAdminStore(list ...*model.Admin) *fakeAdminStore {
	s := &fakeAdminStore{admins: make(map[primitive.ObjectID]*model.Admin)}
	for _, a := range list {
		s.admins[a.ID] = a
	}
	return s
}

func (s *fakeAdminStore) Create(ctx context.Context, admin *model.Admin) (*model.Admin, error) {
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	s.admins[admin.ID] = admin
	return admin, nil
}

func (s *fakeAdminStore) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Admin, error) {
	admin, ok := s.admins[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return admin, nil
}

func (s *fakeAdminStore) GetByLogin(ctx context.Context, login string) (*model.Admin, error) {
	for _, admin := range s.admins {
		if admin.Username == login || (admin.Email != "" && admin.Email == login) {
			return admin, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeAdminStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.admins)), nil
}

// fakeLimiter 固定視窗限流的記憶體版；remaining < 0 代表額度用罄
type fakeLimiter struct {
	counts map[string]int
	limit  int
	err    error // 設定後 Consume 一律回傳此錯誤（模擬 Redis 故障）
}

func newFakeLimiter(limit int) *fakeLimiter {
	return &fakeLimiter{counts: map[string]int{}, limit: limit}
}

func (l *fakeLimiter) Consume(ctx context.Context, scope core.RedisKey, identifier string, windowSeconds int64, limitCount int) (int, int64, error) {
	if l.err != nil {
		return 0, 0, l.err
	}
	l.counts[identifier]++
	if l.counts[identifier] > l.limit {
		return 0, windowSeconds, ErrLoginRateExceeded
	}
	return l.limit - l.counts[identifier], windowSeconds, nil
}

func (l *fakeLimiter) Reset(ctx context.Context, scope core.RedisKey, identifier string) error {
	delete(l.counts, identifier)
	return nil
}
