package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.GRPCAddr != ":9090" {
		t.Errorf("GRPCAddr = %q, want %q", cfg.GRPCAddr, ":9090")
	}
	if cfg.JWTIssuer != "healthtrack-auth" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "healthtrack-auth")
	}
	if cfg.JWTAudience != "healthtrack-api" {
		t.Errorf("JWTAudience = %q, want %q", cfg.JWTAudience, "healthtrack-api")
	}
	if cfg.JWTAccessTTL != "1h" {
		t.Errorf("JWTAccessTTL = %q, want %q", cfg.JWTAccessTTL, "1h")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.SigninMaxAttempts != 5 {
		t.Errorf("SigninMaxAttempts = %d, want 5", cfg.SigninMaxAttempts)
	}
	if cfg.SigninWindowDuration() != 15*time.Minute {
		t.Errorf("SigninWindowDuration = %v, want 15m", cfg.SigninWindowDuration())
	}
	if cfg.EventsKafkaTopic != "healthtrack-events" {
		t.Errorf("EventsKafkaTopic = %q, want default", cfg.EventsKafkaTopic)
	}
	if cfg.KafkaGroupID != "healthtrack-events-worker" {
		t.Errorf("KafkaGroupID = %q, want default", cfg.KafkaGroupID)
	}
	if cfg.ServiceName != "healthtrack-backend" {
		t.Errorf("ServiceName = %q, want default", cfg.ServiceName)
	}
	if cfg.AuthEnabled() {
		t.Error("AuthEnabled should be false without keys")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":7070")
	os.Setenv("JWT_ISSUER", "custom-issuer")
	os.Setenv("BCRYPT_COST", "14")
	os.Setenv("SIGNIN_MAX_ATTEMPTS", "3")
	os.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":7070")
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "custom-issuer")
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
	if cfg.SigninMaxAttempts != 3 {
		t.Errorf("SigninMaxAttempts = %d, want 3", cfg.SigninMaxAttempts)
	}
	if !cfg.OTLPInsecure {
		t.Error("OTLPInsecure should be true")
	}
}

func TestLoad_BCRYPT_COSTRange(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  int
		err   bool
	}{
		{"valid min", "4", 4, false},
		{"valid max", "31", 31, false},
		{"valid middle", "12", 12, false},
		{"too low", "3", 0, true},
		{"too high", "32", 0, true},
		{"zero", "0", 12, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv("BCRYPT_COST", tc.value)

			cfg, err := Load()
			if tc.err {
				if err == nil {
					t.Fatal("Load should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.BcryptCost != tc.want {
				t.Errorf("BcryptCost = %d, want %d", cfg.BcryptCost, tc.want)
			}
		})
	}
}

func TestLoad_SigninMaxAttemptsInvalid(t *testing.T) {
	os.Clearenv()
	os.Setenv("SIGNIN_MAX_ATTEMPTS", "0")

	cfg, err := Load()
	if err == nil {
		t.Fatal("Load should return error for SIGNIN_MAX_ATTEMPTS=0")
	}
	if cfg != nil {
		t.Error("Load should return nil config on error")
	}
}

func TestAccessTTL(t *testing.T) {
	testCases := []struct {
		value string
		want  time.Duration
	}{
		{"30m", 30 * time.Minute},
		{"invalid", time.Hour},
		{"0", time.Hour},
		{"-5m", time.Hour},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			cfg := &Config{JWTAccessTTL: tc.value}
			if got := cfg.AccessTTL(); got != tc.want {
				t.Errorf("AccessTTL = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSigninWindowDuration(t *testing.T) {
	if got := (&Config{SigninWindow: "1h"}).SigninWindowDuration(); got != time.Hour {
		t.Errorf("SigninWindowDuration = %v, want 1h", got)
	}
	if got := (&Config{SigninWindow: "bogus"}).SigninWindowDuration(); got != 15*time.Minute {
		t.Errorf("SigninWindowDuration = %v, want 15m (default)", got)
	}
}

func TestAuthEnabled(t *testing.T) {
	if (&Config{JWTPrivateKey: "a"}).AuthEnabled() {
		t.Error("AuthEnabled should require both keys")
	}
	if !(&Config{JWTPrivateKey: "a", JWTPublicKey: "b"}).AuthEnabled() {
		t.Error("AuthEnabled should be true with both keys")
	}
	var nilCfg *Config
	if nilCfg.AuthEnabled() {
		t.Error("nil config should not enable auth")
	}
}

func TestKafkaBrokersList(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "localhost:9092", []string{"localhost:9092"}},
		{"multiple with spaces", " a:9092 , b:9092 ,, ", []string{"a:9092", "b:9092"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{KafkaBrokers: tc.in}
			got := cfg.KafkaBrokersList()
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("KafkaBrokersList = %v, want %v", got, tc.want)
			}
		})
	}
	var nilCfg *Config
	if nilCfg.KafkaBrokersList() != nil {
		t.Error("nil config should return nil")
	}
}
