package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Role     string `validate:"required,oneof=consumer farmer delivery_agent admin"`
}

type LoginOutput struct {
	AccessToken string
	AccountID   int64
	FullName    string
	Role        entity.Role
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	account, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Email or password is incorrect", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(account.Password, in.Password) {
		return nil, goerror.NewBusiness("Email or password is incorrect", goerror.CodeUnauthorized)
	}

	// The client declares which role it is signing in as; a consumer app
	// cannot obtain a farmer session for a farmer's credentials by accident.
	if in.Role != account.Role.String() {
		return nil, goerror.NewBusiness("Role is incorrect", goerror.CodeUnauthorized)
	}

	switch account.Status {
	case entity.AccountStatusActive:
	case entity.AccountStatusPendingApproval:
		return nil, goerror.NewBusiness("Your account is awaiting admin approval", goerror.CodeForbidden)
	default:
		return nil, goerror.NewBusiness("Your account is suspended", goerror.CodeForbidden)
	}

	token, err := s.jwt.Generate(account.ID, account.Email, account.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "account_id", account.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{
		AccessToken: token,
		AccountID:   account.ID,
		FullName:    account.FullName,
		Role:        account.Role,
	}, nil
}
