package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
)

func seedOrder(f *fixture, orderID int64, status entity.OrderStatus) {
	f.repo.orders[orderID] = &entity.OrderConsumer{
		OrderID:       orderID,
		Status:        status,
		ConsumerID:    7,
		ConsumerEmail: "buyer@example.com",
		ConsumerName:  "Bayu Buyer",
	}
}

func TestDeliveryOtpSend(t *testing.T) {
	t.Run("EmailsTheConsumer", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedOrder(f, 10, entity.OrderStatusPlaced)

		// Act
		out, err := f.uc.DeliveryOtpSend(context.Background(), DeliveryOtpSendInput{OrderID: 10})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.ExpiresInSeconds != 300 {
			t.Fatalf("expected 300 seconds, got %d", out.ExpiresInSeconds)
		}
		if len(f.mailer.sent) != 1 {
			t.Fatalf("expected 1 email, got %d", len(f.mailer.sent))
		}
		if got := f.mailer.sent[0].To[0]; got != "buyer@example.com" {
			t.Fatalf("expected the consumer's address, got %s", got)
		}
		if !strings.Contains(f.mailer.sent[0].TextBody, "123456") {
			t.Fatalf("expected the code in the email body, got %q", f.mailer.sent[0].TextBody)
		}
	})

	t.Run("ResendReplacesTheCode", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedOrder(f, 10, entity.OrderStatusPlaced)
		f.otp.codes = []int{111111, 222222}

		// Act
		if _, err := f.uc.DeliveryOtpSend(context.Background(), DeliveryOtpSendInput{OrderID: 10}); err != nil {
			t.Fatalf("first send: %v", err)
		}
		if _, err := f.uc.DeliveryOtpSend(context.Background(), DeliveryOtpSendInput{OrderID: 10}); err != nil {
			t.Fatalf("second send: %v", err)
		}

		// Assert
		err := f.uc.DeliveryConfirm(context.Background(), DeliveryConfirmInput{OrderID: 10, OTP: "111111"})
		assertCode(t, err, goerror.CodeUnauthorized)

		if err := f.uc.DeliveryConfirm(context.Background(), DeliveryConfirmInput{OrderID: 10, OTP: "222222"}); err != nil {
			t.Fatalf("expected the latest code to confirm, got %v", err)
		}
	})

	t.Run("UnknownOrder", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.DeliveryOtpSend(context.Background(), DeliveryOtpSendInput{OrderID: 404})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("AlreadyDelivered", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedOrder(f, 10, entity.OrderStatusDelivered)

		// Act
		_, err := f.uc.DeliveryOtpSend(context.Background(), DeliveryOtpSendInput{OrderID: 10})

		// Assert
		assertCode(t, err, goerror.CodeConflict)
	})
}

func TestDeliveryConfirm(t *testing.T) {
	t.Run("MarksTheOrderDelivered", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedOrder(f, 10, entity.OrderStatusPlaced)
		if _, err := f.uc.DeliveryOtpSend(context.Background(), DeliveryOtpSendInput{OrderID: 10}); err != nil {
			t.Fatalf("send: %v", err)
		}

		// Act
		err := f.uc.DeliveryConfirm(context.Background(), DeliveryConfirmInput{OrderID: 10, OTP: "123456"})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := f.repo.orders[10].Status; got != entity.OrderStatusDelivered {
			t.Fatalf("expected status Delivered, got %s", got)
		}
		if len(f.msg.delivered) != 1 {
			t.Fatalf("expected 1 delivered event, got %d", len(f.msg.delivered))
		}
		if got := f.msg.delivered[0].ConsumerEmail; got != "buyer@example.com" {
			t.Fatalf("expected the consumer's address on the event, got %s", got)
		}
	})

	t.Run("EventKeepsTheContactFromIssuance", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedOrder(f, 10, entity.OrderStatusPlaced)
		if _, err := f.uc.DeliveryOtpSend(context.Background(), DeliveryOtpSendInput{OrderID: 10}); err != nil {
			t.Fatalf("send: %v", err)
		}
		f.repo.orders[10].ConsumerEmail = "changed@example.com"
		f.repo.orders[10].ConsumerName = "Changed Name"

		// Act
		err := f.uc.DeliveryConfirm(context.Background(), DeliveryConfirmInput{OrderID: 10, OTP: "123456"})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := f.msg.delivered[0].ConsumerEmail; got != "buyer@example.com" {
			t.Fatalf("expected the address from issuance, got %s", got)
		}
		if got := f.msg.delivered[0].ConsumerName; got != "Bayu Buyer" {
			t.Fatalf("expected the name from issuance, got %s", got)
		}
	})

	t.Run("IncorrectCode", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedOrder(f, 10, entity.OrderStatusPlaced)
		if _, err := f.uc.DeliveryOtpSend(context.Background(), DeliveryOtpSendInput{OrderID: 10}); err != nil {
			t.Fatalf("send: %v", err)
		}

		// Act
		err := f.uc.DeliveryConfirm(context.Background(), DeliveryConfirmInput{OrderID: 10, OTP: "999999"})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
		if got := f.repo.orders[10].Status; got != entity.OrderStatusPlaced {
			t.Fatalf("expected the order to stay placed, got %s", got)
		}
	})

	t.Run("ExpiredCode", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedOrder(f, 10, entity.OrderStatusPlaced)
		if _, err := f.uc.DeliveryOtpSend(context.Background(), DeliveryOtpSendInput{OrderID: 10}); err != nil {
			t.Fatalf("send: %v", err)
		}
		f.clk.Advance(6 * time.Minute)

		// Act
		err := f.uc.DeliveryConfirm(context.Background(), DeliveryConfirmInput{OrderID: 10, OTP: "123456"})

		// Assert
		assertCode(t, err, goerror.CodeGone)
	})

	t.Run("NoPendingDelivery", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedOrder(f, 10, entity.OrderStatusPlaced)

		// Act
		err := f.uc.DeliveryConfirm(context.Background(), DeliveryConfirmInput{OrderID: 10, OTP: "123456"})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("ConcurrentConfirmDeliversOnce", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		seedOrder(f, 10, entity.OrderStatusPlaced)
		if _, err := f.uc.DeliveryOtpSend(context.Background(), DeliveryOtpSendInput{OrderID: 10}); err != nil {
			t.Fatalf("send: %v", err)
		}

		// Act
		const workers = 16
		results := make([]error, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = f.uc.DeliveryConfirm(context.Background(), DeliveryConfirmInput{OrderID: 10, OTP: "123456"})
			}(i)
		}
		wg.Wait()

		// Assert
		var winners int
		for _, err := range results {
			if err == nil {
				winners++
			}
		}
		if winners != 1 {
			t.Fatalf("expected exactly 1 winner, got %d", winners)
		}
		if f.repo.delivered != 1 {
			t.Fatalf("expected exactly 1 status transition, got %d", f.repo.delivered)
		}
	})
}
