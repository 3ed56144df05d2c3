package service

import (
	"context"
	"errors"
	"testing"

	"milkline/config"
	"milkline/internal/core"
	"milkline/internal/database/mongodb/model"
	"milkline/internal/dto"
	cErr "milkline/internal/pkg/error"
	"milkline/utils/password"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func authFixture(t *testing.T, limiter LoginLimiter) (*AuthService, *model.Admin, *model.Employee) {
	t.Helper()
	adminHash, err := password.Hash("admin-secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	employeeHash, err := password.Hash("milk-route")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := &model.Admin{
		ID:           primitive.NewObjectID(),
		Username:     "admin",
		Email:        "admin@example.com",
		Name:         "Admin",
		PasswordHash: adminHash,
	}
	employee := &model.Employee{
		ID:           primitive.NewObjectID(),
		Name:         "Ravi",
		MobileNumber: "9876543210",
		PasswordHash: employeeHash,
		AssignedArea: "North",
		IsActive:     true,
	}
	conf := &config.Configuration{
		App: config.App{Name: "milkline"},
		Auth: config.Auth{
			JWTSecret:          "test-secret",
			TokenTTLHours:      1,
			LoginRateWindowSec: 60,
			LoginRateLimit:     5,
		},
	}
	svc := NewAuthService(testTrace(t), zap.NewNop(), conf,
		newFakeAdminStore(admin), newFakeEmployeeStore(employee), limiter)
	return svc, admin, employee
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("admin by username", func(t *testing.T) {
		svc, admin, _ := authFixture(t, newFakeLimiter(5))
		resp, err := svc.Login(ctx, &dto.LoginDto{Identifier: "admin", Password: "admin-secret"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if resp.Role != core.RoleAdmin || resp.User.ID != admin.ID.Hex() {
			t.Errorf("resp = %+v", resp)
		}
		if resp.Token == "" {
			t.Error("empty token")
		}
	})

	t.Run("admin by email", func(t *testing.T) {
		svc, _, _ := authFixture(t, newFakeLimiter(5))
		if _, err := svc.Login(ctx, &dto.LoginDto{Identifier: "admin@example.com", Password: "admin-secret"}); err != nil {
			t.Fatalf("Login by email: %v", err)
		}
	})

	t.Run("employee by mobile", func(t *testing.T) {
		svc, _, employee := authFixture(t, newFakeLimiter(5))
		resp, err := svc.Login(ctx, &dto.LoginDto{Identifier: "9876543210", Password: "milk-route"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if resp.Role != core.RoleEmployee || resp.User.ID != employee.ID.Hex() {
			t.Errorf("resp = %+v", resp)
		}
		if resp.User.AssignedArea != "North" {
			t.Errorf("AssignedArea = %q", resp.User.AssignedArea)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _, _ := authFixture(t, newFakeLimiter(5))
		_, err := svc.Login(ctx, &dto.LoginDto{Identifier: "admin", Password: "nope"})
		assertErrorCode(t, err, cErr.UNAUTHORIZED)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		svc, _, _ := authFixture(t, newFakeLimiter(5))
		_, err := svc.Login(ctx, &dto.LoginDto{Identifier: "9999999999", Password: "whatever"})
		assertErrorCode(t, err, cErr.UNAUTHORIZED)
	})

	t.Run("deactivated employee", func(t *testing.T) {
		svc, _, employee := authFixture(t, newFakeLimiter(5))
		employee.IsActive = false
		_, err := svc.Login(ctx, &dto.LoginDto{Identifier: "9876543210", Password: "milk-route"})
		assertErrorCode(t, err, cErr.FORBIDDEN)
	})
}

func TestLoginRateLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("exceeded after window limit", func(t *testing.T) {
		svc, _, _ := authFixture(t, newFakeLimiter(2))
		bad := &dto.LoginDto{Identifier: "admin", Password: "nope"}
		for i := 0; i < 2; i++ {
			_, err := svc.Login(ctx, bad)
			assertErrorCode(t, err, cErr.UNAUTHORIZED)
		}
		_, err := svc.Login(ctx, bad)
		assertErrorCode(t, err, cErr.RATE_LIMIT_EXCEEDED)
	})

	t.Run("success resets window", func(t *testing.T) {
		limiter := newFakeLimiter(3)
		svc, _, _ := authFixture(t, limiter)
		if _, err := svc.Login(ctx, &dto.LoginDto{Identifier: "admin", Password: "nope"}); err == nil {
			t.Fatal("want unauthorized")
		}
		if _, err := svc.Login(ctx, &dto.LoginDto{Identifier: "admin", Password: "admin-secret"}); err != nil {
			t.Fatalf("Login: %v", err)
		}
		if limiter.counts["admin"] != 0 {
			t.Errorf("counter = %d, want reset to 0", limiter.counts["admin"])
		}
	})

	t.Run("limiter outage fails open", func(t *testing.T) {
		limiter := newFakeLimiter(1)
		limiter.err = errors.New("redis: connection refused")
		svc, _, _ := authFixture(t, limiter)
		if _, err := svc.Login(ctx, &dto.LoginDto{Identifier: "admin", Password: "admin-secret"}); err != nil {
			t.Fatalf("Login during limiter outage: %v", err)
		}
	})
}

func TestParseToken(t *testing.T) {
	ctx := context.Background()
	svc, admin, _ := authFixture(t, newFakeLimiter(5))
	resp, err := svc.Login(ctx, &dto.LoginDto{Identifier: "admin", Password: "admin-secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	principal, err := svc.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if principal.ID != admin.ID || principal.Role != core.RoleAdmin {
		t.Errorf("principal = %+v", principal)
	}

	if _, err := svc.ParseToken(resp.Token + "x"); err == nil {
		t.Error("tampered token accepted")
	}
	if _, err := svc.ParseToken("not-a-jwt"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	svc, admin, employee := authFixture(t, newFakeLimiter(5))

	profile, err := svc.Me(ctx, &core.Principal{ID: admin.ID, Role: core.RoleAdmin})
	if err != nil {
		t.Fatalf("Me admin: %v", err)
	}
	if profile.Username != "admin" || profile.Role != core.RoleAdmin {
		t.Errorf("profile = %+v", profile)
	}

	profile, err = svc.Me(ctx, &core.Principal{ID: employee.ID, Role: core.RoleEmployee})
	if err != nil {
		t.Fatalf("Me employee: %v", err)
	}
	if profile.MobileNumber != "9876543210" {
		t.Errorf("profile = %+v", profile)
	}

	_, err = svc.Me(ctx, &core.Principal{ID: primitive.NewObjectID(), Role: core.RoleAdmin})
	assertErrorCode(t, err, cErr.INVALID_SESSION)
}
