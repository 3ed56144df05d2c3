package command

import (
	"context"
	"errors"
	"time"

	"milkline/internal/database/mongodb/model"
	"milkline/internal/database/mongodb/repository"
	"milkline/utils/password"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type SeedAdminHandler struct {
	logger    *zap.Logger
	adminRepo *repository.AdminRepository
}

func NewSeedAdminHandler(logger *zap.Logger, adminRepo *repository.AdminRepository) *SeedAdminHandler {
	return &SeedAdminHandler{
		logger:    logger,
		adminRepo: adminRepo,
	}
}

// Run 建立預設管理員；帳號已存在則跳過，密碼一律 bcrypt 存放
func (handler *SeedAdminHandler) Run(cmd *cobra.Command, args []string) {
	username, _ := cmd.Flags().GetString("username")
	plain, _ := cmd.Flags().GetString("password")
	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")

	if plain == "" {
		cmd.PrintErrln("--password 為必填")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := handler.adminRepo.GetByLogin(ctx, username)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		handler.logger.Error("lookup admin failed", zap.Error(err))
		return
	}
	if existing != nil {
		cmd.Printf("admin %q 已存在，跳過建立\n", username)
		return
	}

	hash, err := password.Hash(plain)
	if err != nil {
		handler.logger.Error("hash password failed", zap.Error(err))
		return
	}

	now := time.Now().UTC()
	admin := &model.Admin{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := handler.adminRepo.Create(ctx, admin); err != nil {
		handler.logger.Error("create admin failed", zap.Error(err))
		return
	}
	cmd.Printf("admin %q 建立完成\n", username)
}
