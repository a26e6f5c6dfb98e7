package market

import (
	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/market/inbound"
	"github.com/dailyvegies/api/internal/market/outbound/db"
	"github.com/dailyvegies/api/internal/market/outbound/mq"
	"github.com/dailyvegies/api/internal/market/usecase"
	"github.com/dailyvegies/api/internal/pkg/clock"
	"github.com/dailyvegies/api/internal/pkg/config"
	"github.com/dailyvegies/api/internal/pkg/goroutine"
	"github.com/dailyvegies/api/internal/pkg/hash"
	"github.com/dailyvegies/api/internal/pkg/idempotency"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/mail"
	"github.com/dailyvegies/api/internal/pkg/messaging"
	"github.com/dailyvegies/api/internal/pkg/otp"
	"github.com/dailyvegies/api/internal/pkg/pending"
	"github.com/dailyvegies/api/internal/pkg/router"
	"github.com/dailyvegies/api/internal/pkg/storage"
	"github.com/dailyvegies/api/internal/pkg/uid"
	"github.com/dailyvegies/api/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn      *pgxpool.Pool                          `validate:"required"`
	Goroutine   *goroutine.Manager                     `validate:"required"`
	Router      *router.Router                         `validate:"required"`
	Messaging   messaging.Messaging                    `validate:"required"`
	Config      config.Config                          `validate:"required"`
	Instrument  instrument.Instrumentation             `validate:"required"`
	Deliveries  pending.Store[entity.PendingDelivery]  `validate:"required"`
	Mailer      mail.Mail                              `validate:"required"`
	Storage     storage.Storage                        `validate:"required"`
	Idempotency idempotency.Idempotency                `validate:"required"`
	UID         uid.NumberID                           `validate:"required"`
	HMAC        hash.Hash                              `validate:"required"`
	OTP         otp.Generator                          `validate:"required"`
	Clock       clock.Clocker                          `validate:"required"`
	Validator   validator.Validator                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		HMAC:          dep.HMAC,
		OTP:           dep.OTP,
		Deliveries:    dep.Deliveries,
		Mailer:        dep.Mailer,
		Storage:       dep.Storage,
		Idempotency:   dep.Idempotency,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
