package error

import (
	"errors"
	"net/http"
	"testing"
)

func TestFrom(t *testing.T) {
	original := QuotaExceeded("over quota")
	if got := From(original); got != original {
		t.Error("From should pass through *Error unchanged")
	}

	wrapped := From(errors.New("boom"))
	if wrapped.ErrorCode() != INTERNAL_ERROR || wrapped.HttpCode() != http.StatusInternalServerError {
		t.Errorf("From(plain error) = code %d http %d", wrapped.ErrorCode(), wrapped.HttpCode())
	}
	if wrapped.ErrorDesc() != "boom" {
		t.Errorf("desc = %q", wrapped.ErrorDesc())
	}
}

func TestDomainConstructors(t *testing.T) {
	tests := []struct {
		err      *Error
		wantHttp int
		wantCode int
	}{
		{DuplicateEntry("x"), http.StatusBadRequest, DUPLICATE_ENTRY},
		{DuplicateAssignment("x"), http.StatusBadRequest, DUPLICATE_ASSIGNMENT},
		{DuplicateDelivery("x"), http.StatusBadRequest, DUPLICATE_DELIVERY},
		{OverAllocation("x"), http.StatusBadRequest, OVER_ALLOCATION},
		{QuotaExceeded("x"), http.StatusBadRequest, QUOTA_EXCEEDED},
		{NotAssigned("x"), http.StatusBadRequest, NOT_ASSIGNED},
		{InvalidSession("x"), http.StatusUnauthorized, INVALID_SESSION},
		{RateLimitExceeded("x"), http.StatusTooManyRequests, RATE_LIMIT_EXCEEDED},
		{RateLimiterUnavailable("x"), http.StatusServiceUnavailable, SERVICE_UNAVAILABLE},
	}
	for _, tt := range tests {
		if tt.err.HttpCode() != tt.wantHttp || tt.err.ErrorCode() != tt.wantCode {
			t.Errorf("%s: http %d code %d, want %d / %d",
				tt.err.Error(), tt.err.HttpCode(), tt.err.ErrorCode(), tt.wantHttp, tt.wantCode)
		}
	}
}

func TestMapHttpStatusToError(t *testing.T) {
	tests := []struct {
		status   int
		wantCode int
	}{
		{http.StatusBadRequest, BAD_REQUEST_PARAMS},
		{http.StatusUnauthorized, UNAUTHORIZED},
		{http.StatusForbidden, FORBIDDEN},
		{http.StatusNotFound, NOT_FOUND},
		{http.StatusTooManyRequests, RATE_LIMIT_EXCEEDED},
		{http.StatusServiceUnavailable, SERVICE_UNAVAILABLE},
		{http.StatusBadGateway, INTERNAL_ERROR},
		{http.StatusTeapot, INTERNAL_ERROR},
	}
	for _, tt := range tests {
		got := MapHttpStatusToError(tt.status, "desc")
		if got.ErrorCode() != tt.wantCode {
			t.Errorf("MapHttpStatusToError(%d) = %d, want %d", tt.status, got.ErrorCode(), tt.wantCode)
		}
		if got.HttpCode() == 0 {
			t.Errorf("MapHttpStatusToError(%d) lost http code", tt.status)
		}
	}
}
