package auth

import (
	"testing"
	"time"

	"github.com/sobnin/sobnin-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "sobnin",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseStaffToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	now := time.Now()

	signed, err := MintStaffToken(cfg, now, 7, "staff@sobnin.ma", "Karim")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseStaffToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.StaffID != 7 {
		t.Fatalf("expected staff id 7, got %d", claims.StaffID)
	}
	if claims.Email != "staff@sobnin.ma" || claims.Name != "Karim" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintStaffToken(cfg, time.Now(), 7, "staff@sobnin.ma", "Karim")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "a-different-secret"
	if _, err := ParseStaffToken(other, signed); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintStaffToken(cfg, time.Now(), 7, "staff@sobnin.ma", "Karim")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseStaffToken(other, signed); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintStaffToken(cfg, time.Now().Add(-2*time.Hour), 7, "staff@sobnin.ma", "Karim")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseStaffToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestMintRequiresConfig(t *testing.T) {
	t.Parallel()

	for _, cfg := range []config.JWTConfig{
		{Issuer: "sobnin", ExpirationMinutes: 60},
		{Secret: "s", ExpirationMinutes: 60},
		{Secret: "s", Issuer: "sobnin"},
	} {
		if _, err := MintStaffToken(cfg, time.Now(), 1, "a@b.c", "A"); err == nil {
			t.Fatalf("expected error for config %+v", cfg)
		}
	}
}
