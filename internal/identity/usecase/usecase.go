package usecase

import (
	"context"
	"time"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/clock"
	"github.com/dailyvegies/api/internal/pkg/config"
	"github.com/dailyvegies/api/internal/pkg/goroutine"
	"github.com/dailyvegies/api/internal/pkg/hash"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/jwt"
	"github.com/dailyvegies/api/internal/pkg/mail"
	"github.com/dailyvegies/api/internal/pkg/otp"
	"github.com/dailyvegies/api/internal/pkg/pending"
	"github.com/dailyvegies/api/internal/pkg/uid"
	"github.com/dailyvegies/api/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type AccountRegisteredEvent struct {
	AccountID int64
	Email     string
	FullName  string
	Role      entity.Role
}

type AccountApprovedEvent struct {
	AccountID int64
	Email     string
	FullName  string
	Role      entity.Role
}

type repoMessaging interface {
	PublishAccountRegistered(ctx context.Context, msg AccountRegisteredEvent) error
	PublishAccountApproved(ctx context.Context, msg AccountApprovedEvent) error
}

type repoDB interface {
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetAccountByMobile(ctx context.Context, mobile string) (*entity.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*entity.Account, error)
	GetAccountsByStatus(ctx context.Context, status entity.AccountStatus) ([]entity.Account, error)

	CreateAccount(ctx context.Context, in entity.Account) error

	UpdateAccountProfile(ctx context.Context, in entity.ProfileUpdate) error
	UpdateAccountPassword(ctx context.Context, id int64, password string) error
	UpdateAccountStatus(ctx context.Context, id int64, oldStatus, newStatus entity.AccountStatus) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	hmac          hash.Hash
	otp           otp.Generator
	registrations pending.Store[entity.PendingRegistration]
	resets        pending.Store[entity.PendingPasswordReset]
	mailer        mail.Mail
	uid           uid.NumberID
	clock         clock.Clocker
	jwt           jwt.JWT
	continuer     jwt.Continuer
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	HMAC          hash.Hash
	OTP           otp.Generator
	Registrations pending.Store[entity.PendingRegistration]
	Resets        pending.Store[entity.PendingPasswordReset]
	Mailer        mail.Mail
	UID           uid.NumberID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Continuer     jwt.Continuer
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		hmac:          dep.HMAC,
		otp:           dep.OTP,
		registrations: dep.Registrations,
		resets:        dep.Resets,
		mailer:        dep.Mailer,
		uid:           dep.UID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		continuer:     dep.Continuer,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

// otpTTL is how long an emailed code stays valid. The continuation token is
// issued with the same lifetime so both expire together.
func (s *Usecase) otpTTL() time.Duration {
	if d := s.cfg.GetMinute("identity.otp_ttl_minutes"); d > 0 {
		return d
	}

	return 5 * time.Minute
}

// hashOTP produces the deterministic digest stored in the pending record. A
// keyed hash is used instead of bcrypt so the verify step can compare without
// the plaintext ever being persisted.
func (s *Usecase) hashOTP(code int) (string, error) {
	sum, err := s.hmac.Hash(otp.Format(code))
	if err != nil {
		return "", err
	}

	return string(sum), nil
}
