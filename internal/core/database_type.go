package core

import "go.mongodb.org/mongo-driver/bson"

// ─── Database Types ────────────────────────────────────────────────────────────

type MongoDatabaseName string
type MongoCollection string
type RedisKey string
type FluentdSubTag string

const (
	MongoDBMilkline MongoDatabaseName = "milkline"
)

// MongoDB collections
const (
	MongoCollectionAdmins           MongoCollection = "admins"
	MongoCollectionEmployees        MongoCollection = "employees"
	MongoCollectionConsumers        MongoCollection = "consumers"
	MongoCollectionAssignments      MongoCollection = "consumer_assignments"
	MongoCollectionDailyMilkEntries MongoCollection = "daily_milk_entries"
	MongoCollectionDailyDeliveries  MongoCollection = "daily_deliveries"
	MongoCollectionSystemSettings   MongoCollection = "system_settings"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyLoginRate  RedisKey = "login_rate" // 登入限流視窗
	RedisKeyServerName RedisKey = "milkline"
)

const (
	FluentdRequest  FluentdSubTag = "request_log"
	FluentdResponse FluentdSubTag = "response_log"
)

// ListOptions 分頁查詢共用參數（page 從 1 起算，limit 為每頁筆數）
type ListOptions struct {
	Filter bson.M `json:"filter,omitempty" bson:"filter,omitempty"`
	Page   int64  `json:"page,omitempty" bson:"page,omitempty"`
	Limit  int64  `json:"limit,omitempty" bson:"limit,omitempty"`
	Sort   bson.D `json:"-" bson:"-"`
}
