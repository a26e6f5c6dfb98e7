package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/pending"
)

// startRegistration runs Register and returns the continuation token for the
// verification step.
func startRegistration(t *testing.T, f *fixture, role string) string {
	t.Helper()

	in := validRegisterInput()
	in.Role = role

	out, err := f.uc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	return out.ContinuationToken
}

func TestRegisterVerify(t *testing.T) {
	t.Run("ConsumerIsActivatedAndLoggedIn", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		token := startRegistration(t, f, "consumer")

		// Act
		out, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
			ContinuationToken: token,
			OTP:               "123456",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.PendingApproval {
			t.Fatalf("expected consumer to be active immediately")
		}
		if out.AccessToken == "" {
			t.Fatalf("expected an access token for an active account")
		}

		acc, err := f.repo.GetAccountByEmail(context.Background(), "anna@example.com")
		if err != nil {
			t.Fatalf("expected account to be created, got %v", err)
		}
		if acc.Status != entity.AccountStatusActive {
			t.Fatalf("expected status Active, got %s", acc.Status)
		}
		if len(f.msg.registered) != 1 {
			t.Fatalf("expected 1 registered event, got %d", len(f.msg.registered))
		}
		if f.msg.registered[0].AccountID != acc.ID {
			t.Fatalf("expected event for account %d, got %d", acc.ID, f.msg.registered[0].AccountID)
		}
	})

	t.Run("FarmerWaitsForApproval", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		token := startRegistration(t, f, "farmer")

		// Act
		out, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
			ContinuationToken: token,
			OTP:               "123456",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !out.PendingApproval {
			t.Fatalf("expected farmer to wait for approval")
		}
		if out.AccessToken != "" {
			t.Fatalf("expected no access token before approval")
		}

		acc, err := f.repo.GetAccountByEmail(context.Background(), "anna@example.com")
		if err != nil {
			t.Fatalf("expected account to be created, got %v", err)
		}
		if acc.Status != entity.AccountStatusPendingApproval {
			t.Fatalf("expected status PendingApproval, got %s", acc.Status)
		}
	})

	t.Run("IncorrectCodeKeepsTheRecord", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		token := startRegistration(t, f, "consumer")

		// Act
		_, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
			ContinuationToken: token,
			OTP:               "999999",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
		if f.regs.Len() != 1 {
			t.Fatalf("expected the pending record to survive a wrong code")
		}

		out, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
			ContinuationToken: token,
			OTP:               "123456",
		})
		if err != nil {
			t.Fatalf("expected the correct code to still work, got %v", err)
		}
		if out.Email != "anna@example.com" {
			t.Fatalf("expected anna@example.com, got %s", out.Email)
		}
	})

	t.Run("CodeIsSingleUse", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		token := startRegistration(t, f, "consumer")

		in := RegisterVerifyInput{ContinuationToken: token, OTP: "123456"}
		if _, err := f.uc.RegisterVerify(context.Background(), in); err != nil {
			t.Fatalf("first verify: %v", err)
		}

		// Act
		_, err := f.uc.RegisterVerify(context.Background(), in)

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("ExpiredWindowIsGone", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		token := startRegistration(t, f, "consumer")
		f.clk.Advance(6 * time.Minute)

		// Act
		_, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
			ContinuationToken: token,
			OTP:               "123456",
		})

		// Assert
		assertCode(t, err, goerror.CodeGone)
	})

	t.Run("AttemptBudgetLocksOut", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		token := startRegistration(t, f, "consumer")
		wrong := RegisterVerifyInput{ContinuationToken: token, OTP: "999999"}

		// Act
		var last error
		for i := 0; i < pending.DefaultMaxAttempts; i++ {
			_, last = f.uc.RegisterVerify(context.Background(), wrong)
		}

		// Assert
		assertCode(t, last, goerror.CodeTooManyRequest)

		_, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
			ContinuationToken: token,
			OTP:               "123456",
		})
		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("ConcurrentVerifyCreatesOneAccount", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		token := startRegistration(t, f, "consumer")
		in := RegisterVerifyInput{ContinuationToken: token, OTP: "123456"}

		// Act
		const workers = 16
		results := make([]error, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = f.uc.RegisterVerify(context.Background(), in)
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
		if got := len(f.repo.accounts); got != 1 {
			t.Fatalf("expected exactly 1 account, got %d", got)
		}
	})

	t.Run("GarbageTokenRejected", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
			ContinuationToken: "not-a-token",
			OTP:               "123456",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})
}
