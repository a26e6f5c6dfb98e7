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

var errIncorrectCode = errors.New("identity: verification code mismatch")

type RegisterVerifyInput struct {
	ContinuationToken string `validate:"required"`
	OTP               string `validate:"required,len=6,numeric"`
}

type RegisterVerifyOutput struct {
	AccountID       int64
	Email           string
	FullName        string
	Role            entity.Role
	PendingApproval bool
	AccessToken     string
}

// RegisterVerify turns a pending registration into an account. The code is
// single use: the first correct submission deletes the record, so a replay or
// a concurrent duplicate gets a not-found answer. Consumers are logged in
// right away, farmers and delivery agents wait for admin approval.
func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) (*RegisterVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email, err := s.continuer.Check(in.ContinuationToken, jwt.PurposeRegistration)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, goerror.NewBusiness("Verification window has expired, please register again", goerror.CodeGone)
		}

		return nil, goerror.NewBusiness("Invalid continuation token", goerror.CodeUnauthorized)
	}

	reg, err := s.registrations.Consume(ctx, email, func(r entity.PendingRegistration) error {
		if !s.hmac.Verify(r.OTP, in.OTP) {
			return errIncorrectCode
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errIncorrectCode):
			return nil, goerror.NewBusiness("Incorrect verification code", goerror.CodeUnauthorized)
		case errors.Is(err, pending.ErrExpired):
			return nil, goerror.NewBusiness("Verification code has expired, please register again", goerror.CodeGone)
		case errors.Is(err, pending.ErrTooManyAttempts):
			return nil, goerror.NewBusiness("Too many incorrect codes, please register again", goerror.CodeTooManyRequest)
		case errors.Is(err, pending.ErrNoAction):
			return nil, goerror.NewBusiness("No pending registration for this email", goerror.CodeNotFound)
		default:
			slog.ErrorContext(ctx, "failed to consume pending registration", "email", email, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	status := entity.AccountStatusActive
	if reg.Role.NeedsApproval() {
		status = entity.AccountStatusPendingApproval
	}

	now := s.clock.Now()
	account := entity.Account{
		ID:        s.uid.Generate(),
		Email:     reg.Email,
		FullName:  reg.FullName,
		Mobile:    reg.Mobile,
		Location:  reg.Location,
		Role:      reg.Role,
		Status:    status,
		Password:  reg.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repoDB.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("Email already registered", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to repo create account", "email", account.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishAccountRegistered(ctx, AccountRegisteredEvent{
		AccountID: account.ID,
		Email:     account.Email,
		FullName:  account.FullName,
		Role:      account.Role,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish account registered", "account_id", account.ID, "error", err)
	}

	out := &RegisterVerifyOutput{
		AccountID:       account.ID,
		Email:           account.Email,
		FullName:        account.FullName,
		Role:            account.Role,
		PendingApproval: status == entity.AccountStatusPendingApproval,
	}

	if status == entity.AccountStatusActive {
		token, err := s.jwt.Generate(account.ID, account.Email, account.Role.String())
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate access token", "account_id", account.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		out.AccessToken = token
	}

	return out, nil
}
