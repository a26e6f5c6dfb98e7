package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/jwt"
	"github.com/dailyvegies/api/internal/pkg/mail"
	"github.com/dailyvegies/api/internal/pkg/otp"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

type PasswordForgotOutput struct {
	ContinuationToken string
	ExpiresInSeconds  int64
}

// PasswordForgot starts a reset flow. A continuation token is issued whether
// or not the email belongs to an account, so the response does not reveal
// which addresses are registered; for unknown addresses no code is stored and
// the reset step fails with not-found.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) (*PasswordForgotOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ttl := s.otpTTL()

	account, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err == nil {
		code, err := s.otp.Generate()
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate otp", "error", err)
			return nil, goerror.NewServer(err)
		}

		otpHash, err := s.hashOTP(code)
		if err != nil {
			slog.ErrorContext(ctx, "failed to hash otp", "error", err)
			return nil, goerror.NewServer(err)
		}

		reset := entity.PendingPasswordReset{Email: in.Email, OTP: otpHash}
		if err := s.resets.Put(ctx, in.Email, reset, ttl); err != nil {
			slog.ErrorContext(ctx, "failed to store pending password reset", "email", in.Email, "error", err)
			return nil, goerror.NewServer(err)
		}

		body := fmt.Sprintf("Hello %s,\n\nYour password reset code is %s. It expires in %d minutes.\n\nIf you did not request this, you can ignore this email.\n\nDailyVegies",
			account.FullName, otp.Format(code), int(ttl.Minutes()))
		if err := s.mailer.Send(ctx, mail.Message{
			To:       []string{in.Email},
			Subject:  "Your DailyVegies password reset code",
			TextBody: body,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to send password reset email", "email", in.Email, "error", err)
			return nil, goerror.NewUpstream(err, "Failed to send password reset email")
		}
	}

	token, err := s.continuer.Issue(in.Email, jwt.PurposePasswordReset, ttl)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue continuation token", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PasswordForgotOutput{
		ContinuationToken: token,
		ExpiresInSeconds:  int64(ttl.Seconds()),
	}, nil
}
