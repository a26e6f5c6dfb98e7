package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
)

type AccountApprovalsOutput struct {
	Accounts []entity.Account
}

// AccountApprovals lists accounts waiting for admin sign-off. Route-level
// authorization already restricts this to admins.
func (s *Usecase) AccountApprovals(ctx context.Context) (*AccountApprovalsOutput, error) {
	ctx, span := s.startSpan(ctx, "AccountApprovals")
	defer span.End()

	accounts, err := s.repoDB.GetAccountsByStatus(ctx, entity.AccountStatusPendingApproval)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get accounts by status", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AccountApprovalsOutput{Accounts: accounts}, nil
}

type AccountApproveInput struct {
	AccountID int64 `validate:"required,gt=0"`
}

// AccountApprove activates a farmer or delivery-agent account. The status
// update is conditional on the current status, so two admins approving the
// same account concurrently cannot both succeed.
func (s *Usecase) AccountApprove(ctx context.Context, in AccountApproveInput) error {
	ctx, span := s.startSpan(ctx, "AccountApprove")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	account, err := s.repoDB.GetAccountByID(ctx, in.AccountID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("Account not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", in.AccountID, "error", err)
		return goerror.NewServer(err)
	}

	if account.Status != entity.AccountStatusPendingApproval {
		return goerror.NewBusiness("Account is not awaiting approval", goerror.CodeConflict)
	}

	err = s.repoDB.UpdateAccountStatus(ctx, account.ID, entity.AccountStatusPendingApproval, entity.AccountStatusActive)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("Account is not awaiting approval", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to repo update account status", "account_id", account.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishAccountApproved(ctx, AccountApprovedEvent{
		AccountID: account.ID,
		Email:     account.Email,
		FullName:  account.FullName,
		Role:      account.Role,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish account approved", "account_id", account.ID, "error", err)
	}

	return nil
}
