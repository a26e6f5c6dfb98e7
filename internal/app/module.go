package app

import (
	"log/slog"
	"os"

	"github.com/dailyvegies/api/internal/advisory"
	"github.com/dailyvegies/api/internal/forum"
	"github.com/dailyvegies/api/internal/identity"
	"github.com/dailyvegies/api/internal/market"
	"github.com/dailyvegies/api/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		if err := identity.New(identity.Dependency{
			DBConn:        a.dbConn,
			Goroutine:     a.goroutine,
			Router:        a.router,
			Messaging:     a.messaging,
			Config:        a.config,
			Instrument:    a.ins,
			Registrations: a.registrations,
			Resets:        a.resets,
			Mailer:        a.mail,
			UID:           a.uid,
			HMAC:          a.hmac,
			Bcrypt:        a.bcrypt,
			OTP:           a.otp,
			Clock:         a.clock,
			Validator:     a.validator,
			JWT:           a.jwt,
			Continuer:     a.continuer,
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.market.enabled") {
		if err := market.New(market.Dependency{
			DBConn:      a.dbConn,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Messaging:   a.messaging,
			Config:      a.config,
			Instrument:  a.ins,
			Deliveries:  a.deliveries,
			Mailer:      a.mail,
			Storage:     a.storage,
			Idempotency: a.idemp,
			UID:         a.uid,
			HMAC:        a.hmac,
			OTP:         a.otp,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module market", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.forum.enabled") {
		if err := forum.New(forum.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module forum", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.advisory.enabled") {
		if err := advisory.New(advisory.Dependency{
			Router:     a.router,
			HTTPClient: a.httpClient,
			Config:     a.config,
			Instrument: a.ins,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module advisory", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Mail:       a.mail,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
