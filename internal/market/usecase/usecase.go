package usecase

import (
	"context"
	"time"

	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/pkg/clock"
	"github.com/dailyvegies/api/internal/pkg/config"
	"github.com/dailyvegies/api/internal/pkg/goroutine"
	"github.com/dailyvegies/api/internal/pkg/hash"
	"github.com/dailyvegies/api/internal/pkg/idempotency"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/mail"
	"github.com/dailyvegies/api/internal/pkg/otp"
	"github.com/dailyvegies/api/internal/pkg/pending"
	"github.com/dailyvegies/api/internal/pkg/storage"
	"github.com/dailyvegies/api/internal/pkg/uid"
	"github.com/dailyvegies/api/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type OrderPlacedEvent struct {
	OrderID       int64
	ConsumerEmail string
	ConsumerName  string
	ItemCount     int32
	TotalAmount   int64
}

type OrderDeliveredEvent struct {
	OrderID       int64
	ConsumerEmail string
	ConsumerName  string
}

type repoMessaging interface {
	PublishOrderPlaced(ctx context.Context, msg OrderPlacedEvent) error
	PublishOrderDelivered(ctx context.Context, msg OrderDeliveredEvent) error
}

type repoDB interface {
	CreateCrop(ctx context.Context, in entity.Crop) error
	GetCropsByFarmer(ctx context.Context, farmerID int64) ([]entity.Crop, error)

	CreateProduct(ctx context.Context, in entity.Product) error
	GetProductByID(ctx context.Context, id int64) (*entity.Product, error)
	GetProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)
	GetSimilarProducts(ctx context.Context, p entity.Product, now time.Time, limit int32) ([]entity.Product, error)
	UpdateProductImage(ctx context.Context, id, farmerID int64, imageKey string) error
	DeleteExpiredProducts(ctx context.Context, farmerID int64, now time.Time) (int64, error)

	UpsertCartItem(ctx context.Context, in entity.CartUpsert) error
	GetCartByConsumer(ctx context.Context, consumerID int64) ([]entity.CartLine, error)
	ClearCart(ctx context.Context, consumerID int64) error

	CreateOrder(ctx context.Context, order entity.Order) error
	GetOrderByID(ctx context.Context, id int64) (*entity.Order, error)
	GetOrdersByConsumer(ctx context.Context, consumerID int64) ([]entity.Order, error)
	GetOrderConsumer(ctx context.Context, orderID int64) (*entity.OrderConsumer, error)
	UpdateOrderPayment(ctx context.Context, id int64, status entity.PaymentStatus) error
	UpdateOrderStatus(ctx context.Context, id int64, oldStatus, newStatus entity.OrderStatus) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	otp           otp.Generator
	deliveries    pending.Store[entity.PendingDelivery]
	mailer        mail.Mail
	storage       storage.Storage
	idemp         idempotency.Idempotency
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	OTP           otp.Generator
	Deliveries    pending.Store[entity.PendingDelivery]
	Mailer        mail.Mail
	Storage       storage.Storage
	Idempotency   idempotency.Idempotency
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		otp:           dep.OTP,
		deliveries:    dep.Deliveries,
		mailer:        dep.Mailer,
		storage:       dep.Storage,
		idemp:         dep.Idempotency,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("market.usecase").Start(ctx, name)
}

func (s *Usecase) otpTTL() time.Duration {
	if d := s.cfg.GetMinute("market.delivery_otp_ttl_minutes"); d > 0 {
		return d
	}

	return 5 * time.Minute
}

func (s *Usecase) productBucket() string {
	if b := s.cfg.GetString("market.product_image_bucket"); b != "" {
		return b
	}

	return "dailyvegies-products"
}
