package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
)

type UserDetailInput struct {
	AccountID int64 `validate:"required,gt=0"`
}

type UserDetailOutput struct {
	Account entity.Account
}

// UserDetail returns another account's public profile, used by the market and
// forum surfaces to show seller and author details.
func (s *Usecase) UserDetail(ctx context.Context, in UserDetailInput) (*UserDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "UserDetail")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	account, err := s.repoDB.GetAccountByID(ctx, in.AccountID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", in.AccountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserDetailOutput{Account: *account}, nil
}
