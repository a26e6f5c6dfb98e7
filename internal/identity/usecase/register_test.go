package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Email:    "anna@example.com",
		Password: "correct-horse",
		FullName: "Anna Farmer",
		Mobile:   "0812345678",
		Location: "Bandung",
		Role:     "consumer",
	}
}

func TestRegister(t *testing.T) {
	t.Run("SendsCodeAndIssuesContinuationToken", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		out, err := f.uc.Register(context.Background(), validRegisterInput())

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.ContinuationToken == "" {
			t.Fatalf("expected a continuation token")
		}
		if out.ExpiresInSeconds != 300 {
			t.Fatalf("expected 300 seconds, got %d", out.ExpiresInSeconds)
		}
		if len(f.mailer.sent) != 1 {
			t.Fatalf("expected 1 email, got %d", len(f.mailer.sent))
		}
		if got := f.mailer.sent[0].To[0]; got != "anna@example.com" {
			t.Fatalf("expected email to anna@example.com, got %s", got)
		}
		if !strings.Contains(f.mailer.sent[0].TextBody, "123456") {
			t.Fatalf("expected the code in the email body, got %q", f.mailer.sent[0].TextBody)
		}
		if f.regs.Len() != 1 {
			t.Fatalf("expected 1 pending registration, got %d", f.regs.Len())
		}
	})

	t.Run("EmailIsNormalized", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := validRegisterInput()
		in.Email = "  Anna@Example.COM "

		// Act
		_, err := f.uc.Register(context.Background(), in)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := f.regs.Get(context.Background(), "anna@example.com"); err != nil {
			t.Fatalf("expected pending record under the lowercased email, got %v", err)
		}
	})

	t.Run("ReissueOverwritesPendingCode", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.otp.codes = []int{111111, 222222}

		// Act
		if _, err := f.uc.Register(context.Background(), validRegisterInput()); err != nil {
			t.Fatalf("first register: %v", err)
		}
		if _, err := f.uc.Register(context.Background(), validRegisterInput()); err != nil {
			t.Fatalf("second register: %v", err)
		}

		// Assert
		if f.regs.Len() != 1 {
			t.Fatalf("expected 1 pending registration, got %d", f.regs.Len())
		}

		rec, err := f.regs.Get(context.Background(), "anna@example.com")
		if err != nil {
			t.Fatalf("get pending registration: %v", err)
		}
		if f.hmac.Verify(rec.OTP, "111111") {
			t.Fatalf("expected the first code to be invalidated")
		}
		if !f.hmac.Verify(rec.OTP, "222222") {
			t.Fatalf("expected the latest code to be the valid one")
		}
	})

	t.Run("DuplicateEmailRejected", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.repo.seed(entity.Account{ID: 1, Email: "anna@example.com", Status: entity.AccountStatusActive})

		// Act
		_, err := f.uc.Register(context.Background(), validRegisterInput())

		// Assert
		assertCode(t, err, goerror.CodeConflict)
	})

	t.Run("DuplicateMobileRejected", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.repo.seed(entity.Account{ID: 1, Email: "other@example.com", Mobile: "0812345678", Status: entity.AccountStatusActive})

		// Act
		out, err := f.uc.Register(context.Background(), validRegisterInput())

		// Assert
		assertCode(t, err, goerror.CodeConflict)
		if out != nil {
			t.Fatalf("expected no continuation token for a duplicate mobile")
		}
		if f.regs.Len() != 0 {
			t.Fatalf("expected no pending registration, got %d", f.regs.Len())
		}
	})

	t.Run("DeliveryAgentRequiresLocation", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := validRegisterInput()
		in.Role = "delivery_agent"
		in.Location = ""

		// Act
		_, err := f.uc.Register(context.Background(), in)

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("MailFailureFailsTheCall", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.mailer.sendErr = errors.New("smtp down")

		// Act
		_, err := f.uc.Register(context.Background(), validRegisterInput())

		// Assert
		if err == nil {
			t.Fatalf("expected an error when the email cannot be sent")
		}
	})
}
