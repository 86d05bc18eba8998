package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/threadhouse/threadhouse/internal/model"
	"github.com/threadhouse/threadhouse/internal/store"
	"github.com/threadhouse/threadhouse/internal/store/sqlite"
)

func newTestService(t *testing.T, ttl time.Duration) (*Service, store.Store) {
	t.Helper()
	st, err := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st, ttl), st
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "alice", "s3cr3tpass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected a user id")
	}
	if token.Token == "" {
		t.Fatal("expected a token")
	}

	identity, err := svc.Authenticate(ctx, token.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if identity.UserID != user.ID || identity.Username != "alice" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	loginToken, err := svc.Login(ctx, "alice", "s3cr3tpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loginToken.Token == token.Token {
		t.Fatal("login should issue a fresh token")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "alice", "s3cr3tpass"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "s3cr3tpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "alice", "s3cr3tpass"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := svc.Register(ctx, "alice", "otherpassword"); !errors.Is(err, store.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	svc, st := newTestService(t, time.Hour)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "alice", "s3cr3tpass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	expired := model.Token{
		Token:     "expired-token",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := st.CreateToken(ctx, expired); err != nil {
		t.Fatalf("create token: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "expired-token"); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthenticateUnknownToken(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)

	if _, err := svc.Authenticate(context.Background(), "no-such-token"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
