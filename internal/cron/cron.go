package cron

import (
	"context"
	"errors"
	"time"

	"milkline/internal/service"
	"milkline/utils/validate"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron)

type Cron struct {
	logger    *zap.Logger
	milkStore service.MilkEntryStore
	server    *cron.Cron
}

// NewCron .
func NewCron(logger *zap.Logger, milkStore service.MilkEntryStore) *Cron {
	server := cron.New(
		cron.WithSeconds(),
	)

	return &Cron{
		logger:    logger,
		milkStore: milkStore,
		server:    server,
	}
}

func (c *Cron) Run() error {
	// 每日 00:30 UTC 盤點前一日未覆核的配額
	if _, err := c.server.AddFunc("0 30 0 * * *", c.remindUnverifiedAllocations); err != nil {
		return err
	}

	c.server.Start()
	return nil
}

func (c *Cron) Stop(ctx context.Context) error {
	c.server.Stop()
	return nil
}

// remindUnverifiedAllocations 盤點昨日進貨的每位配送員配額，未覆核者逐筆告警
func (c *Cron) remindUnverifiedAllocations() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	yesterday := validate.DayKey(time.Now().UTC().AddDate(0, 0, -1))
	entry, err := c.milkStore.GetByDate(ctx, yesterday)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.logger.Info("no milk entry recorded yesterday, nothing to reconcile",
				zap.Time("date", yesterday))
			return
		}
		c.logger.Error("load yesterday milk entry failed",
			zap.Time("date", yesterday),
			zap.Error(err))
		return
	}

	unverified := 0
	for _, alloc := range entry.EmployeeAllocations {
		if alloc.IsVerified {
			continue
		}
		unverified++
		c.logger.Warn("allocation not verified by employee",
			zap.Time("date", yesterday),
			zap.String("employeeId", alloc.EmployeeID.Hex()),
			zap.Float64("allocated", alloc.AllocatedQuantity),
			zap.Float64("remaining", alloc.RemainingQuantity),
		)
	}
	c.logger.Info("daily allocation reconciliation done",
		zap.Time("date", yesterday),
		zap.Int("allocations", len(entry.EmployeeAllocations)),
		zap.Int("unverified", unverified),
	)
}
