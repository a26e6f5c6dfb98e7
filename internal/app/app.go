package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	identityentity "github.com/dailyvegies/api/internal/identity/entity"
	marketentity "github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/pkg/clock"
	"github.com/dailyvegies/api/internal/pkg/config"
	"github.com/dailyvegies/api/internal/pkg/goroutine"
	"github.com/dailyvegies/api/internal/pkg/hash"
	"github.com/dailyvegies/api/internal/pkg/idempotency"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/jwt"
	"github.com/dailyvegies/api/internal/pkg/mail"
	"github.com/dailyvegies/api/internal/pkg/messaging"
	"github.com/dailyvegies/api/internal/pkg/otp"
	"github.com/dailyvegies/api/internal/pkg/pending"
	"github.com/dailyvegies/api/internal/pkg/router"
	"github.com/dailyvegies/api/internal/pkg/storage"
	"github.com/dailyvegies/api/internal/pkg/uid"
	"github.com/dailyvegies/api/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT
	continuer jwt.Continuer

	// resources
	dbConn        *pgxpool.Pool
	cacheConn     *redis.Client
	idemp         idempotency.Idempotency
	mail          mail.Mail
	messaging     messaging.Messaging
	storage       storage.Storage
	httpClient    *http.Client
	casbin        *casbin.Enforcer
	registrations pending.Store[identityentity.PendingRegistration]
	resets        pending.Store[identityentity.PendingPasswordReset]
	deliveries    pending.Store[marketentity.PendingDelivery]

	// server
	router     *router.Router
	httpServer *http.Server

	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initHTTPClient()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
