package httpclient

import (
	"testing"
	"time"

	apperrors "github.com/kbukum/order-service/errors"
)

func TestDefaultTimeoutPolicy(t *testing.T) {
	p := DefaultTimeoutPolicy()
	if p.Connect != 3000*time.Millisecond || p.Response != 3000*time.Millisecond {
		t.Errorf("expected 3000ms/3000ms, got %s", p)
	}
	if p.Total() != 6*time.Second {
		t.Errorf("expected total 6s, got %s", p.Total())
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default policy should validate: %v", err)
	}
}

func TestNewTimeoutPolicy(t *testing.T) {
	p := NewTimeoutPolicy(250, 1500)
	if p.Connect != 250*time.Millisecond {
		t.Errorf("expected 250ms connect, got %s", p.Connect)
	}
	if p.Response != 1500*time.Millisecond {
		t.Errorf("expected 1500ms response, got %s", p.Response)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		field   string
		wantErr bool
	}{
		{"valid http", Config{BaseURL: "http://inventory:8082", Timeouts: DefaultTimeoutPolicy()}, "", false},
		{"valid https with path", Config{BaseURL: "https://api.example.com/v1", Timeouts: DefaultTimeoutPolicy()}, "", false},
		{"empty url", Config{Timeouts: DefaultTimeoutPolicy()}, "base_url", true},
		{"relative url", Config{BaseURL: "/api", Timeouts: DefaultTimeoutPolicy()}, "base_url", true},
		{"bad scheme", Config{BaseURL: "ftp://host", Timeouts: DefaultTimeoutPolicy()}, "base_url", true},
		{"no host", Config{BaseURL: "http://", Timeouts: DefaultTimeoutPolicy()}, "base_url", true},
		{"unparseable", Config{BaseURL: "http://[::1", Timeouts: DefaultTimeoutPolicy()}, "base_url", true},
		{"zero connect", Config{BaseURL: "http://h", Timeouts: NewTimeoutPolicy(0, 3000)}, "connect_timeout", true},
		{"negative response", Config{BaseURL: "http://h", Timeouts: NewTimeoutPolicy(3000, -1)}, "response_timeout", true},
		{"zero both", Config{BaseURL: "http://h"}, "connect_timeout", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			appErr, ok := apperrors.AsAppError(err)
			if !ok {
				t.Fatalf("expected *AppError, got %T", err)
			}
			if appErr.Code != apperrors.ErrCodeConfiguration {
				t.Errorf("expected CONFIGURATION_ERROR, got %s", appErr.Code)
			}
			if appErr.Details["field"] != tt.field {
				t.Errorf("expected field %q, got %v", tt.field, appErr.Details["field"])
			}
		})
	}
}

func TestConfig_ApplyDefaultsLeavesTimeouts(t *testing.T) {
	cfg := Config{BaseURL: "http://h"}
	cfg.ApplyDefaults()
	if cfg.Name != "http" {
		t.Errorf("expected default name http, got %s", cfg.Name)
	}
	if cfg.MaxIdleConnsPerHost != 16 {
		t.Errorf("expected 16 idle conns, got %d", cfg.MaxIdleConnsPerHost)
	}
	if cfg.Timeouts.Connect != 0 || cfg.Timeouts.Response != 0 {
		t.Errorf("timeouts must not be defaulted, got %s", cfg.Timeouts)
	}
}
