package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/jwt"
)

type ProfileOutput struct {
	Account entity.Account
}

func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	account, err := s.repoDB.GetAccountByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{Account: *account}, nil
}

type ProfileUpdateInput struct {
	FullName string `validate:"required,min=5,max=100,alphaspace"`
	Mobile   string `validate:"required,mobile"`
	Location string `validate:"required,min=2,max=100"`
}

func (s *Usecase) ProfileUpdate(ctx context.Context, in ProfileUpdateInput) error {
	ctx, span := s.startSpan(ctx, "ProfileUpdate")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.UpdateAccountProfile(ctx, entity.ProfileUpdate{
		AccountID: claims.UserID,
		FullName:  in.FullName,
		Mobile:    in.Mobile,
		Location:  in.Location,
	})
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("Account not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo update account profile", "account_id", claims.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
