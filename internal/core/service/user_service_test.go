package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/librarium/library-api/internal/core/auth"
	"github.com/librarium/library-api/internal/core/domain"
	"github.com/librarium/library-api/internal/core/ports"
)

func TestUserService_Update_RehashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	authSvc, _ := newAuthSvc(repo)
	created, err := authSvc.Register(context.Background(), aliceInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	svc := NewUserService(repo, hasher, zerolog.Nop())

	in := aliceInput()
	in.FirstName = "Alicia"
	in.Password = "N3w!secret"
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput(in))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.FirstName != "Alicia" {
		t.Fatalf("expected first name to change, got %q", updated.FirstName)
	}
	if !hasher.Verify("N3w!secret", updated.PasswordHash) {
		t.Fatalf("expected new password to verify")
	}
	if hasher.Verify("Pass123!", updated.PasswordHash) {
		t.Fatalf("expected old password to stop verifying")
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("expected UpdatedAt to move forward")
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), auth.NewBcryptHasher(bcrypt.MinCost), zerolog.Nop())

	if _, err := svc.Update(context.Background(), "missing", aliceInput()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	authSvc, _ := newAuthSvc(repo)
	created, _ := authSvc.Register(context.Background(), aliceInput())

	svc := NewUserService(repo, auth.NewBcryptHasher(bcrypt.MinCost), zerolog.Nop())
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
