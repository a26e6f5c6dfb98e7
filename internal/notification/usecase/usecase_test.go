package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/mail"
	"github.com/dailyvegies/api/internal/pkg/validator"
)

type fakeMailer struct {
	mu      sync.Mutex
	sent    []mail.Message
	sendErr error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}

	m.sent = append(m.sent, msg)

	return nil
}

func newTestUsecase(t *testing.T) (*Usecase, *fakeMailer) {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	mailer := &fakeMailer{}
	uc := New(Dependency{
		RepoMail:   mailer,
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})

	return uc, mailer
}

func TestConsumeAccountRegistered(t *testing.T) {
	t.Run("ConsumerGetsAWelcomeEmail", func(t *testing.T) {
		// Arrange
		uc, mailer := newTestUsecase(t)

		// Act
		err := uc.ConsumeAccountRegistered(context.Background(), ConsumeAccountRegisteredInput{
			AccountID: 1,
			Email:     "anna@example.com",
			FullName:  "Anna Farmer",
			Role:      "consumer",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(mailer.sent) != 1 {
			t.Fatalf("expected 1 email, got %d", len(mailer.sent))
		}
		if !strings.Contains(mailer.sent[0].TextBody, "Your account is ready") {
			t.Fatalf("unexpected body %q", mailer.sent[0].TextBody)
		}
	})

	t.Run("FarmerIsToldAboutApproval", func(t *testing.T) {
		// Arrange
		uc, mailer := newTestUsecase(t)

		// Act
		err := uc.ConsumeAccountRegistered(context.Background(), ConsumeAccountRegisteredInput{
			AccountID: 1,
			Email:     "anna@example.com",
			FullName:  "Anna Farmer",
			Role:      "farmer",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(mailer.sent[0].TextBody, "review your account") {
			t.Fatalf("unexpected body %q", mailer.sent[0].TextBody)
		}
	})

	t.Run("MalformedEventIsDropped", func(t *testing.T) {
		// Arrange
		uc, mailer := newTestUsecase(t)

		// Act
		err := uc.ConsumeAccountRegistered(context.Background(), ConsumeAccountRegisteredInput{
			AccountID: 1,
			Email:     "not-an-email",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected a dropped event, got %v", err)
		}
		if len(mailer.sent) != 0 {
			t.Fatalf("expected no email, got %d", len(mailer.sent))
		}
	})

	t.Run("SendFailureIsRetried", func(t *testing.T) {
		// Arrange
		uc, mailer := newTestUsecase(t)
		mailer.sendErr = errors.New("smtp down")

		// Act
		err := uc.ConsumeAccountRegistered(context.Background(), ConsumeAccountRegisteredInput{
			AccountID: 1,
			Email:     "anna@example.com",
			FullName:  "Anna Farmer",
			Role:      "consumer",
		})

		// Assert
		if err == nil {
			t.Fatalf("expected the error to surface for redelivery")
		}
	})
}

func TestConsumeOrderPlaced(t *testing.T) {
	t.Run("SendsTheReceipt", func(t *testing.T) {
		// Arrange
		uc, mailer := newTestUsecase(t)

		// Act
		err := uc.ConsumeOrderPlaced(context.Background(), ConsumeOrderPlacedInput{
			OrderID:       10,
			ConsumerEmail: "buyer@example.com",
			ConsumerName:  "Bayu Buyer",
			ItemCount:     3,
			TotalAmount:   45000,
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := mailer.sent[0].Subject; got != "Order #10 confirmed" {
			t.Fatalf("unexpected subject %q", got)
		}
	})
}

func TestConsumeOrderDelivered(t *testing.T) {
	t.Run("SendsTheDeliveryNote", func(t *testing.T) {
		// Arrange
		uc, mailer := newTestUsecase(t)

		// Act
		err := uc.ConsumeOrderDelivered(context.Background(), ConsumeOrderDeliveredInput{
			OrderID:       10,
			ConsumerEmail: "buyer@example.com",
			ConsumerName:  "Bayu Buyer",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(mailer.sent) != 1 {
			t.Fatalf("expected 1 email, got %d", len(mailer.sent))
		}
	})
}
