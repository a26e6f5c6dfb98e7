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

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	FullName string `validate:"required,min=5,max=100,alphaspace"`
	Mobile   string `validate:"required,mobile"`
	Location string `validate:"omitempty,min=2,max=100"`
	Role     string `validate:"required,oneof=consumer farmer delivery_agent"`
}

type RegisterOutput struct {
	ContinuationToken string
	ExpiresInSeconds  int64
}

// Register starts the verification flow: nothing is written to the database
// until the emailed code is confirmed. Calling it again for the same email
// replaces the pending record, so the latest code is always the valid one.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	role := entity.RoleFromString(in.Role)

	// Delivery agents are dispatched by area, so their location is not optional.
	if role == entity.RoleDeliveryAgent && strings.TrimSpace(in.Location) == "" {
		return nil, goerror.NewInvalidInput(nil, "location", "Location is required for delivery agents")
	}

	_, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if err == nil {
		return nil, goerror.NewBusiness("Email already registered", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	_, err = s.repoDB.GetAccountByMobile(ctx, in.Mobile)
	if err == nil {
		return nil, goerror.NewBusiness("Mobile number already registered", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by mobile", "mobile", in.Mobile, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

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

	ttl := s.otpTTL()
	reg := entity.PendingRegistration{
		Email:    in.Email,
		FullName: in.FullName,
		Mobile:   in.Mobile,
		Location: in.Location,
		Role:     role,
		Password: string(hashedPassword),
		OTP:      otpHash,
	}

	if err := s.registrations.Put(ctx, in.Email, reg, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to store pending registration", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	// The code only travels by email. If the mail cannot go out the whole
	// call fails, otherwise the caller would wait on a code that never comes.
	body := fmt.Sprintf("Hello %s,\n\nYour verification code is %s. It expires in %d minutes.\n\nDailyVegies",
		in.FullName, otp.Format(code), int(ttl.Minutes()))
	if err := s.mailer.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  "Your DailyVegies verification code",
		TextBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send verification email", "email", in.Email, "error", err)
		return nil, goerror.NewUpstream(err, "Failed to send verification email")
	}

	token, err := s.continuer.Issue(in.Email, jwt.PurposeRegistration, ttl)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue continuation token", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RegisterOutput{
		ContinuationToken: token,
		ExpiresInSeconds:  int64(ttl.Seconds()),
	}, nil
}
