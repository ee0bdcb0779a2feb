package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/goodplates/recipes-api/internal/core/domain"
)

const testSecret = "test-secret"

func newAuthFixture() (*AuthService, *memUserRepo, *memDenylist) {
	users := newMemUserRepo()
	denylist := newMemDenylist()
	svc := NewAuthService(users, denylist, testSecret, time.Hour, testLogger())
	return svc, users, denylist
}

func TestAuthService_Register_AlwaysPlainUser(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), "alice", "Alice", "s3cret-pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %q", user.Role)
	}
	if user.PasswordHash == "s3cret-pw" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
	if user.Recipes == nil {
		t.Fatal("recipes array must be initialised")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), "alice", "", "s3cret-pw"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "alice", "", "other-pw")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthService_Login_ReturnsValidToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	created, err := svc.Register(context.Background(), "alice", "Alice", "s3cret-pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice", "s3cret-pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["sub"] != created.ID || claims["username"] != "alice" || claims["role"] != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatal("token must carry a jti for revocation")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), "alice", "", "s3cret-pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("a missing user must look like bad credentials, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	svc, _, denylist := newAuthFixture()

	if err := svc.Logout(context.Background(), "token-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("logout: %v", err)
	}
	revoked, err := denylist.IsRevoked(context.Background(), "token-1")
	if err != nil || !revoked {
		t.Fatalf("token must be revoked, revoked=%v err=%v", revoked, err)
	}
}

func TestAuthService_Logout_ExpiredTokenIsNoop(t *testing.T) {
	svc, _, denylist := newAuthFixture()

	if err := svc.Logout(context.Background(), "token-2", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("logout: %v", err)
	}
	revoked, _ := denylist.IsRevoked(context.Background(), "token-2")
	if revoked {
		t.Fatal("an already-expired token needs no denylist entry")
	}
}
