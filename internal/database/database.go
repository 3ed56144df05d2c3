package database

import (
	client "milkline/internal/database/client"
	fluentdRepo "milkline/internal/database/fluentd/repository"
	mongoRepo "milkline/internal/database/mongodb/repository"
	redisRepo "milkline/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 與 Repository 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
