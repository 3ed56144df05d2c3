package service

import (
	mongorepo "milkline/internal/database/mongodb/repository"
	redisrepo "milkline/internal/database/redis/repository"

	"github.com/google/wire"
)

// Mongo/Redis repository 以介面注入，測試時可替換為記憶體實作
var ProviderSet = wire.NewSet(
	NewAuthService,
	NewEmployeeService,
	NewConsumerService,
	NewAssignmentService,
	NewMilkEntryService,
	NewDeliveryService,
	NewBillingService,
	NewSettingsService,
	NewHealthService,
	wire.Bind(new(AdminStore), new(*mongorepo.AdminRepository)),
	wire.Bind(new(EmployeeStore), new(*mongorepo.EmployeeRepository)),
	wire.Bind(new(ConsumerStore), new(*mongorepo.ConsumerRepository)),
	wire.Bind(new(AssignmentStore), new(*mongorepo.AssignmentRepository)),
	wire.Bind(new(MilkEntryStore), new(*mongorepo.DailyMilkEntryRepository)),
	wire.Bind(new(DeliveryStore), new(*mongorepo.DailyDeliveryRepository)),
	wire.Bind(new(SettingsStore), new(*mongorepo.SystemSettingsRepository)),
	wire.Bind(new(LoginLimiter), new(*redisrepo.RateLimiterRepository)),
)
