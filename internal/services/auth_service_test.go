package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/trx-sasta/backend/internal/models"
)

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig())
	ctx := context.Background()

	token, user, err := svc.Register(ctx, "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if user.PasswordHash == "hunter22" {
		t.Fatal("password must not be stored in plain text")
	}

	got, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if got != user.ID {
		t.Fatalf("token bound to %s, want %s", got, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "bob@example.com", "pw1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, _, err := svc.Register(ctx, "bob@example.com", "pw2")
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", "bob@example.com").Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one account, got %d", count)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig())
	ctx := context.Background()

	for _, tc := range []struct{ email, password string }{
		{"", "pw"},
		{"carol@example.com", ""},
		{"", ""},
	} {
		if _, _, err := svc.Register(ctx, tc.email, tc.password); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("(%q, %q): expected ErrMissingFields, got %v", tc.email, tc.password, err)
		}
	}
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testConfig())
	ctx := context.Background()

	_, registered, err := svc.Register(ctx, "dave@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong password and unknown email look the same
	if _, _, err := svc.Login(ctx, "dave@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}

	token, user, err := svc.Login(ctx, "dave@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("login returned wrong account")
	}
	got, err := svc.VerifyToken(token)
	if err != nil || got != registered.ID {
		t.Fatalf("login token did not verify to the account: id=%s err=%v", got, err)
	}
}

func TestVerifyTokenRejectsGarbageAndExpired(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	ctx := context.Background()

	if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage: expected ErrInvalidToken, got %v", err)
	}

	// A service with a negative TTL issues already-expired tokens.
	expiredCfg := testConfig()
	expiredCfg.Auth.TokenTTL = -time.Minute
	expiredSvc := NewAuthService(db, expiredCfg)
	token, _, err := expiredSvc.Register(ctx, "eve@example.com", "pw")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired: expected ErrInvalidToken, got %v", err)
	}

	// A token signed with a different secret must not verify.
	otherCfg := testConfig()
	otherCfg.Auth.JWTSecret = "other-secret"
	otherSvc := NewAuthService(db, otherCfg)
	token, _, err = otherSvc.Register(ctx, "mallory@example.com", "pw")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: expected ErrInvalidToken, got %v", err)
	}
}
