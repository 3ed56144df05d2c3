package service

import (
	"context"
	"testing"

	"milkline/internal/database/mongodb/model"
	"milkline/internal/dto"
	cErr "milkline/internal/pkg/error"
)

func TestSettings(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(testTrace(t), &fakeSettingsStore{})

	t.Run("first read seeds defaults", func(t *testing.T) {
		resp, err := svc.GetSettings(ctx)
		if err != nil {
			t.Fatalf("GetSettings: %v", err)
		}
		if resp.DefaultMilkRate != model.DefaultMilkRate {
			t.Errorf("DefaultMilkRate = %v, want %v", resp.DefaultMilkRate, model.DefaultMilkRate)
		}
	})

	t.Run("update rate", func(t *testing.T) {
		rate := 65.0
		resp, err := svc.UpdateSettings(ctx, &dto.UpdateSettingsDto{DefaultMilkRate: &rate})
		if err != nil {
			t.Fatalf("UpdateSettings: %v", err)
		}
		if resp.DefaultMilkRate != 65 {
			t.Errorf("DefaultMilkRate = %v, want 65", resp.DefaultMilkRate)
		}
	})

	t.Run("empty update rejected", func(t *testing.T) {
		_, err := svc.UpdateSettings(ctx, &dto.UpdateSettingsDto{})
		assertErrorCode(t, err, cErr.BAD_REQUEST_PARAMS)
	})
}
