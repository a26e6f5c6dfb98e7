package usecase

import (
	"context"
	"testing"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
)

func TestAccountApprove(t *testing.T) {
	t.Run("ActivatesPendingAccount", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		acc := seedAccount(t, f, entity.AccountStatusPendingApproval)

		// Act
		err := f.uc.AccountApprove(context.Background(), AccountApproveInput{AccountID: acc.ID})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got, err := f.repo.GetAccountByID(context.Background(), acc.ID)
		if err != nil {
			t.Fatalf("get account: %v", err)
		}
		if got.Status != entity.AccountStatusActive {
			t.Fatalf("expected status Active, got %s", got.Status)
		}
		if len(f.msg.approved) != 1 {
			t.Fatalf("expected 1 approved event, got %d", len(f.msg.approved))
		}
	})

	t.Run("AlreadyActiveIsConflict", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		acc := seedAccount(t, f, entity.AccountStatusActive)

		// Act
		err := f.uc.AccountApprove(context.Background(), AccountApproveInput{AccountID: acc.ID})

		// Assert
		assertCode(t, err, goerror.CodeConflict)
	})

	t.Run("LostRaceIsConflict", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		acc := seedAccount(t, f, entity.AccountStatusPendingApproval)
		f.repo.updateStatusErr = goerror.ErrNotFound

		// Act
		err := f.uc.AccountApprove(context.Background(), AccountApproveInput{AccountID: acc.ID})

		// Assert
		assertCode(t, err, goerror.CodeConflict)
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		err := f.uc.AccountApprove(context.Background(), AccountApproveInput{AccountID: 404})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})
}

func TestAccountApprovals(t *testing.T) {
	t.Run("ListsOnlyPendingAccounts", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.repo.seed(entity.Account{ID: 1, Email: "a@example.com", Status: entity.AccountStatusActive})
		f.repo.seed(entity.Account{ID: 2, Email: "b@example.com", Status: entity.AccountStatusPendingApproval})

		// Act
		out, err := f.uc.AccountApprovals(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(out.Accounts) != 1 {
			t.Fatalf("expected 1 pending account, got %d", len(out.Accounts))
		}
		if out.Accounts[0].ID != 2 {
			t.Fatalf("expected account 2, got %d", out.Accounts[0].ID)
		}
	})
}
