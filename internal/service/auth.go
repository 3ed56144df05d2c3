package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"milkline/config"
	"milkline/internal/core"
	"milkline/internal/dto"
	cErr "milkline/internal/pkg/error"
	"milkline/internal/telemetry"
	"milkline/utils/password"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type AuthService struct {
	trace        *telemetry.Trace
	logger       *zap.Logger
	config       *config.Configuration
	adminRepo    AdminStore
	employeeRepo EmployeeStore
	limiter      LoginLimiter
}

func NewAuthService(
	trace *telemetry.Trace,
	logger *zap.Logger,
	config *config.Configuration,
	adminRepo AdminStore,
	employeeRepo EmployeeStore,
	limiter LoginLimiter,
) *AuthService {
	return &AuthService{
		trace:        trace,
		logger:       logger,
		config:       config,
		adminRepo:    adminRepo,
		employeeRepo: employeeRepo,
		limiter:      limiter,
	}
}

// Login 管理員（username/email）或配送員（手機號）登入。
// 失敗嘗試吃 Redis 固定視窗限流；限流器本身故障時放行，不擋登入
func (s *AuthService) Login(ctx context.Context, req *dto.LoginDto) (returnedDto *dto.LoginResponseDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if err := s.consumeLoginQuota(ctx, req.Identifier); err != nil {
		return nil, err
	}

	// 先試管理員，再試配送員手機號
	admin, err := s.adminRepo.GetByLogin(ctx, req.Identifier)
	if err == nil {
		if !password.Verify(admin.PasswordHash, req.Password) {
			return nil, cErr.Unauthorized("invalid credentials")
		}
		token, err := s.issueToken(admin.ID.Hex(), core.RoleAdmin)
		if err != nil {
			return nil, cErr.InternalServer("sign token error")
		}
		s.resetLoginQuota(ctx, req.Identifier)
		s.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{
			PrincipalID: admin.ID.Hex(), Role: string(core.RoleAdmin), Status: "ok",
		})
		return &dto.LoginResponseDto{
			Token: token,
			Role:  core.RoleAdmin,
			User: dto.ProfileDto{
				ID:       admin.ID.Hex(),
				Role:     core.RoleAdmin,
				Name:     admin.Name,
				Username: admin.Username,
				Email:    admin.Email,
			},
		}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, cErr.DatabaseError("database Login error")
	}

	employee, err := s.employeeRepo.GetByMobile(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.Unauthorized("invalid credentials")
		}
		return nil, cErr.DatabaseError("database Login error")
	}
	if !employee.IsActive {
		return nil, cErr.Forbidden("account is deactivated")
	}
	if !password.Verify(employee.PasswordHash, req.Password) {
		return nil, cErr.Unauthorized("invalid credentials")
	}
	token, err := s.issueToken(employee.ID.Hex(), core.RoleEmployee)
	if err != nil {
		return nil, cErr.InternalServer("sign token error")
	}
	s.resetLoginQuota(ctx, req.Identifier)
	s.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{
		PrincipalID: employee.ID.Hex(), Role: string(core.RoleEmployee), Status: "ok",
	})
	return &dto.LoginResponseDto{
		Token: token,
		Role:  core.RoleEmployee,
		User: dto.ProfileDto{
			ID:           employee.ID.Hex(),
			Role:         core.RoleEmployee,
			Name:         employee.Name,
			MobileNumber: employee.MobileNumber,
			AssignedArea: employee.AssignedArea,
		},
	}, nil
}

// Me 目前登入者的公開資訊
func (s *AuthService) Me(ctx context.Context, principal *core.Principal) (*dto.ProfileDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if principal.IsAdmin() {
		admin, err := s.adminRepo.GetByID(ctx, principal.ID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, cErr.InvalidSession("account no longer exists")
			}
			return nil, cErr.DatabaseError("database Me error")
		}
		return &dto.ProfileDto{
			ID:       admin.ID.Hex(),
			Role:     core.RoleAdmin,
			Name:     admin.Name,
			Username: admin.Username,
			Email:    admin.Email,
		}, nil
	}

	employee, err := s.employeeRepo.GetByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.InvalidSession("account no longer exists")
		}
		return nil, cErr.DatabaseError("database Me error")
	}
	return &dto.ProfileDto{
		ID:           employee.ID.Hex(),
		Role:         core.RoleEmployee,
		Name:         employee.Name,
		MobileNumber: employee.MobileNumber,
		AssignedArea: employee.AssignedArea,
	}, nil
}

// ParseToken 驗證 Bearer token 並還原 Principal
func (s *AuthService) ParseToken(tokenString string) (*core.Principal, error) {
	claims := &core.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, cErr.InvalidSession("invalid or expired token")
	}
	if !core.IsValidRole(string(claims.Role)) {
		return nil, cErr.InvalidSession("invalid role in token")
	}
	principal, err := claims.Principal()
	if err != nil {
		return nil, cErr.InvalidSession("invalid subject in token")
	}
	return principal, nil
}

func (s *AuthService) issueToken(subject string, role core.Role) (string, error) {
	ttl := time.Duration(s.config.Auth.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now().UTC()
	claims := core.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.config.App.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Auth.JWTSecret))
}

func (s *AuthService) consumeLoginQuota(ctx context.Context, identifier string) error {
	window := int64(s.config.Auth.LoginRateWindowSec)
	limit := s.config.Auth.LoginRateLimit
	if window <= 0 || limit <= 0 {
		return nil
	}
	_, ttl, err := s.limiter.Consume(ctx, core.RedisKeyLoginRate, identifier, window, limit)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrLoginRateExceeded) {
		return cErr.RateLimitExceeded(fmt.Sprintf("too many login attempts, retry in %ds", ttl))
	}
	// 限流器故障不擋登入
	s.logger.Warn("login rate limiter unavailable", zap.Error(err))
	return nil
}

func (s *AuthService) resetLoginQuota(ctx context.Context, identifier string) {
	if s.config.Auth.LoginRateWindowSec <= 0 || s.config.Auth.LoginRateLimit <= 0 {
		return
	}
	if err := s.limiter.Reset(ctx, core.RedisKeyLoginRate, identifier); err != nil {
		s.logger.Warn("reset login rate key failed", zap.Error(err))
	}
}
