package usecase

import (
	"context"
	"testing"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
)

func seedAccount(t *testing.T, f *fixture, status entity.AccountStatus) entity.Account {
	t.Helper()

	hashed, err := f.bcrypt.Hash("correct-horse")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	acc := entity.Account{
		ID:       42,
		Email:    "anna@example.com",
		FullName: "Anna Farmer",
		Mobile:   "0812345678",
		Role:     entity.RoleConsumer,
		Status:   status,
		Password: string(hashed),
	}
	f.repo.seed(acc)

	return acc
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		acc := seedAccount(t, f, entity.AccountStatusActive)

		// Act
		out, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "Anna@Example.com",
			Password: "correct-horse",
			Role:     "consumer",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.AccessToken == "" {
			t.Fatalf("expected an access token")
		}
		if out.AccountID != acc.ID {
			t.Fatalf("expected account %d, got %d", acc.ID, out.AccountID)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedAccount(t, f, entity.AccountStatusActive)

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "anna@example.com",
			Password: "wrong-horse",
			Role:     "consumer",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("UnknownEmailGetsTheSameAnswer", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedAccount(t, f, entity.AccountStatusActive)

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "nobody@example.com",
			Password: "correct-horse",
			Role:     "consumer",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)

		gerr := err.(*goerror.Error)
		if gerr.Msg() != "Email or password is incorrect" {
			t.Fatalf("unexpected message %q", gerr.Msg())
		}
	})

	t.Run("WrongRoleRejected", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedAccount(t, f, entity.AccountStatusActive)

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "anna@example.com",
			Password: "correct-horse",
			Role:     "farmer",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)

		gerr := err.(*goerror.Error)
		if gerr.Msg() != "Role is incorrect" {
			t.Fatalf("unexpected message %q", gerr.Msg())
		}
	})

	t.Run("PendingApprovalIsForbidden", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedAccount(t, f, entity.AccountStatusPendingApproval)

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "anna@example.com",
			Password: "correct-horse",
			Role:     "consumer",
		})

		// Assert
		assertCode(t, err, goerror.CodeForbidden)
	})

	t.Run("SuspendedIsForbidden", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedAccount(t, f, entity.AccountStatusSuspended)

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "anna@example.com",
			Password: "correct-horse",
			Role:     "consumer",
		})

		// Assert
		assertCode(t, err, goerror.CodeForbidden)
	})
}
