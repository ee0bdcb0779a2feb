package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/core/ports"
)

func TestUserService_Create_DefaultsToUserRole(t *testing.T) {
	svc := NewUserService(newMemUserRepo(), testLogger())

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "carol",
		Password: "s3cret-pw",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", user.Role)
	}
}

func TestUserService_Create_RejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newMemUserRepo(), testLogger())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "carol",
		Password: "s3cret-pw",
		Role:     "superuser",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	users := newMemUserRepo()
	svc := NewUserService(users, testLogger())

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "carol",
		Password: "old-password",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newPassword := "new-password"
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{
		Password: &newPassword,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, _ := users.FindByID(context.Background(), updated.ID)
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(newPassword)) != nil {
		t.Fatal("new password does not verify against the stored hash")
	}
}

func TestUserService_EnsureDefaultAdmin_CreatesOnce(t *testing.T) {
	users := newMemUserRepo()
	svc := NewUserService(users, testLogger())

	if err := svc.EnsureDefaultAdmin(context.Background(), "bootstrap-pw"); err != nil {
		t.Fatalf("first bootstrap: %v", err)
	}
	admin, err := users.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if admin.Role != domain.RoleAdmin || admin.Name != "Default Admin" {
		t.Fatalf("unexpected admin account: %+v", admin)
	}

	// Second run must leave the existing account untouched.
	if err := svc.EnsureDefaultAdmin(context.Background(), "different-pw"); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	again, _ := users.FindByUsername(context.Background(), "admin")
	if again.PasswordHash != admin.PasswordHash {
		t.Fatal("existing admin must not be overwritten")
	}
}
