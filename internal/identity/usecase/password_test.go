package usecase

import (
	"context"
	"testing"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
)

func TestPasswordForgot(t *testing.T) {
	t.Run("KnownEmailGetsACode", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedAccount(t, f, entity.AccountStatusActive)

		// Act
		out, err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "anna@example.com"})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.ContinuationToken == "" {
			t.Fatalf("expected a continuation token")
		}
		if len(f.mailer.sent) != 1 {
			t.Fatalf("expected 1 email, got %d", len(f.mailer.sent))
		}
		if f.resets.Len() != 1 {
			t.Fatalf("expected 1 pending reset, got %d", f.resets.Len())
		}
	})

	t.Run("UnknownEmailStillLooksTheSame", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		out, err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "nobody@example.com"})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.ContinuationToken == "" {
			t.Fatalf("expected a continuation token even for unknown emails")
		}
		if len(f.mailer.sent) != 0 {
			t.Fatalf("expected no email for an unknown address, got %d", len(f.mailer.sent))
		}
		if f.resets.Len() != 0 {
			t.Fatalf("expected no pending reset, got %d", f.resets.Len())
		}
	})
}

func TestPasswordReset(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		acc := seedAccount(t, f, entity.AccountStatusActive)

		out, err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: acc.Email})
		if err != nil {
			t.Fatalf("forgot: %v", err)
		}

		// Act
		err = f.uc.PasswordReset(context.Background(), PasswordResetInput{
			ContinuationToken: out.ContinuationToken,
			OTP:               "123456",
			NewPassword:       "new-password-1",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		stored, ok := f.repo.passwordUpdates[acc.ID]
		if !ok {
			t.Fatalf("expected the password to be updated")
		}
		if !f.bcrypt.Verify(stored, "new-password-1") {
			t.Fatalf("expected the stored digest to match the new password")
		}
	})

	t.Run("IncorrectCode", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		acc := seedAccount(t, f, entity.AccountStatusActive)

		out, err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: acc.Email})
		if err != nil {
			t.Fatalf("forgot: %v", err)
		}

		// Act
		err = f.uc.PasswordReset(context.Background(), PasswordResetInput{
			ContinuationToken: out.ContinuationToken,
			OTP:               "999999",
			NewPassword:       "new-password-1",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
		if len(f.repo.passwordUpdates) != 0 {
			t.Fatalf("expected no password update")
		}
	})

	t.Run("UnknownEmailTokenEndsNotFound", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		out, err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "nobody@example.com"})
		if err != nil {
			t.Fatalf("forgot: %v", err)
		}

		// Act
		err = f.uc.PasswordReset(context.Background(), PasswordResetInput{
			ContinuationToken: out.ContinuationToken,
			OTP:               "123456",
			NewPassword:       "new-password-1",
		})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("RegistrationTokenRejected", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		token := startRegistration(t, f, "consumer")

		// Act
		err := f.uc.PasswordReset(context.Background(), PasswordResetInput{
			ContinuationToken: token,
			OTP:               "123456",
			NewPassword:       "new-password-1",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})
}
