package service

import (
	"context"
	"time"

	"milkline/internal/core"
	"milkline/internal/database/mongodb/model"
	redisrepo "milkline/internal/database/redis/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrLoginRateExceeded 登入限流額度用罄
var ErrLoginRateExceeded = redisrepo.ErrRateLimitExceeded

// Service 依賴的儲存層介面，由 mongodb/repository 滿足（wire.Bind）。
// 測試時以記憶體實作替換，不需要真的 Mongo

type AdminStore interface {
	Create(ctx context.Context, admin *model.Admin) (*model.Admin, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Admin, error)
	GetByLogin(ctx context.Context, login string) (*model.Admin, error)
	Count(ctx context.Context) (int64, error)
}

type EmployeeStore interface {
	Create(ctx context.Context, employee *model.Employee) (*model.Employee, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Employee, error)
	GetByMobile(ctx context.Context, mobileNumber string) (*model.Employee, error)
	List(ctx context.Context, opts core.ListOptions) ([]*model.Employee, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

type ConsumerStore interface {
	Create(ctx context.Context, consumer *model.Consumer) (*model.Consumer, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Consumer, error)
	List(ctx context.Context, opts core.ListOptions) ([]*model.Consumer, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	DistinctAreas(ctx context.Context) ([]string, error)
}

type AssignmentStore interface {
	Create(ctx context.Context, assignment *model.Assignment) (*model.Assignment, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Assignment, error)
	FindPair(ctx context.Context, employeeID, consumerID primitive.ObjectID) (*model.Assignment, error)
	FindActivePair(ctx context.Context, employeeID, consumerID primitive.ObjectID) (*model.Assignment, error)
	List(ctx context.Context, opts core.ListOptions) ([]*model.Assignment, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

type MilkEntryStore interface {
	Create(ctx context.Context, entry *model.DailyMilkEntry) (*model.DailyMilkEntry, error)
	GetByDate(ctx context.Context, date time.Time) (*model.DailyMilkEntry, error)
	List(ctx context.Context, opts core.ListOptions) ([]*model.DailyMilkEntry, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	ConsumeAllocation(ctx context.Context, date time.Time, employeeID primitive.ObjectID, quantity float64) (bool, error)
	RestoreAllocation(ctx context.Context, date time.Time, employeeID primitive.ObjectID, quantity float64) error
	MarkVerified(ctx context.Context, date time.Time, employeeID primitive.ObjectID, at time.Time) error
}

type DeliveryStore interface {
	Create(ctx context.Context, delivery *model.DailyDelivery) (*model.DailyDelivery, error)
	FindByConsumerAndDate(ctx context.Context, consumerID primitive.ObjectID, date time.Time) (*model.DailyDelivery, error)
	List(ctx context.Context, opts core.ListOptions) ([]*model.DailyDelivery, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	FindRange(ctx context.Context, filter bson.M) ([]*model.DailyDelivery, error)
}

type SettingsStore interface {
	Get(ctx context.Context) (*model.SystemSettings, error)
	Update(ctx context.Context, update bson.M) (*model.SystemSettings, error)
}

type LoginLimiter interface {
	Consume(ctx context.Context, scope core.RedisKey, identifier string, windowSeconds int64, limitCount int) (int, int64, error)
	Reset(ctx context.Context, scope core.RedisKey, identifier string) error
}
