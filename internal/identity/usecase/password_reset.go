package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/jwt"
	"github.com/dailyvegies/api/internal/pkg/pending"
)

type PasswordResetInput struct {
	ContinuationToken string `validate:"required"`
	OTP               string `validate:"required,len=6,numeric"`
	NewPassword       string `validate:"required,password"`
}

func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	email, err := s.continuer.Check(in.ContinuationToken, jwt.PurposePasswordReset)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return goerror.NewBusiness("Reset window has expired, please request a new code", goerror.CodeGone)
		}

		return goerror.NewBusiness("Invalid continuation token", goerror.CodeUnauthorized)
	}

	_, err = s.resets.Consume(ctx, email, func(r entity.PendingPasswordReset) error {
		if !s.hmac.Verify(r.OTP, in.OTP) {
			return errIncorrectCode
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errIncorrectCode):
			return goerror.NewBusiness("Incorrect reset code", goerror.CodeUnauthorized)
		case errors.Is(err, pending.ErrExpired):
			return goerror.NewBusiness("Reset code has expired, please request a new one", goerror.CodeGone)
		case errors.Is(err, pending.ErrTooManyAttempts):
			return goerror.NewBusiness("Too many incorrect codes, please request a new one", goerror.CodeTooManyRequest)
		case errors.Is(err, pending.ErrNoAction):
			return goerror.NewBusiness("No pending password reset for this email", goerror.CodeNotFound)
		default:
			slog.ErrorContext(ctx, "failed to consume pending password reset", "email", email, "error", err)
			return goerror.NewServer(err)
		}
	}

	account, err := s.repoDB.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("Account not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get account by email", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateAccountPassword(ctx, account.ID, string(hashedPassword)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update account password", "account_id", account.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
