package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/pkg/config"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/goroutine"
	"github.com/dailyvegies/api/internal/pkg/hash"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/jwt"
	"github.com/dailyvegies/api/internal/pkg/mail"
	"github.com/dailyvegies/api/internal/pkg/pending"
	"github.com/dailyvegies/api/internal/pkg/validator"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

type fakeRepoDB struct {
	mu sync.Mutex

	orders    map[int64]*entity.OrderConsumer
	cart      []entity.CartLine
	similar   map[int64][]entity.Product
	delivered int
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		orders:  make(map[int64]*entity.OrderConsumer),
		similar: make(map[int64][]entity.Product),
	}
}

func (r *fakeRepoDB) CreateCrop(context.Context, entity.Crop) error { return nil }

func (r *fakeRepoDB) GetCropsByFarmer(context.Context, int64) ([]entity.Crop, error) {
	return nil, nil
}

func (r *fakeRepoDB) CreateProduct(context.Context, entity.Product) error { return nil }

func (r *fakeRepoDB) GetProductByID(context.Context, int64) (*entity.Product, error) {
	return nil, goerror.ErrNotFound
}

func (r *fakeRepoDB) GetProducts(context.Context, entity.ProductFilter) ([]entity.Product, error) {
	return nil, nil
}

func (r *fakeRepoDB) GetSimilarProducts(_ context.Context, p entity.Product, _ time.Time, limit int32) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	similar := r.similar[p.ID]
	if int32(len(similar)) > limit {
		similar = similar[:limit]
	}

	return similar, nil
}

func (r *fakeRepoDB) UpdateProductImage(context.Context, int64, int64, string) error { return nil }

func (r *fakeRepoDB) DeleteExpiredProducts(context.Context, int64, time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeRepoDB) UpsertCartItem(context.Context, entity.CartUpsert) error { return nil }

func (r *fakeRepoDB) GetCartByConsumer(context.Context, int64) ([]entity.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cart, nil
}

func (r *fakeRepoDB) ClearCart(context.Context, int64) error { return nil }

func (r *fakeRepoDB) CreateOrder(context.Context, entity.Order) error { return nil }

func (r *fakeRepoDB) GetOrderByID(context.Context, int64) (*entity.Order, error) {
	return nil, goerror.ErrNotFound
}

func (r *fakeRepoDB) GetOrdersByConsumer(context.Context, int64) ([]entity.Order, error) {
	return nil, nil
}

func (r *fakeRepoDB) GetOrderConsumer(_ context.Context, orderID int64) (*entity.OrderConsumer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	oc, ok := r.orders[orderID]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	cp := *oc

	return &cp, nil
}

func (r *fakeRepoDB) UpdateOrderPayment(context.Context, int64, entity.PaymentStatus) error {
	return nil
}

func (r *fakeRepoDB) UpdateOrderStatus(_ context.Context, id int64, oldStatus, newStatus entity.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	oc, ok := r.orders[id]
	if !ok || oc.Status != oldStatus {
		return goerror.ErrNotFound
	}

	oc.Status = newStatus
	if newStatus == entity.OrderStatusDelivered {
		r.delivered++
	}

	return nil
}

type fakeMessaging struct {
	mu        sync.Mutex
	placed    []OrderPlacedEvent
	delivered []OrderDeliveredEvent
}

func (m *fakeMessaging) PublishOrderPlaced(_ context.Context, msg OrderPlacedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.placed = append(m.placed, msg)

	return nil
}

func (m *fakeMessaging) PublishOrderDelivered(_ context.Context, msg OrderDeliveredEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.delivered = append(m.delivered, msg)

	return nil
}

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

func (m *fakeMailer) Close() error { return nil }

type fakeOTP struct {
	mu    sync.Mutex
	codes []int
}

func (o *fakeOTP) Generate() (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.codes) > 1 {
		code := o.codes[0]
		o.codes = o.codes[1:]

		return code, nil
	}

	return o.codes[0], nil
}

type fakeConfig struct {
	config.Config
	otpTTL time.Duration
}

func (c fakeConfig) GetMinute(string) time.Duration { return c.otpTTL }

func (c fakeConfig) GetString(string) string { return "" }

type fixture struct {
	uc         *Usecase
	repo       *fakeRepoDB
	msg        *fakeMessaging
	mailer     *fakeMailer
	otp        *fakeOTP
	clk        *fakeClock
	deliveries *pending.Memory[entity.PendingDelivery]
	hmac       hash.Hash
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	clk := newFakeClock()

	f := &fixture{
		repo:       newFakeRepoDB(),
		msg:        &fakeMessaging{},
		mailer:     &fakeMailer{},
		otp:        &fakeOTP{codes: []int{123456}},
		clk:        clk,
		deliveries: pending.NewMemory[entity.PendingDelivery](clk),
		hmac:       hash.NewHMACSHA256("test-otp-secret"),
	}

	f.uc = New(Dependency{
		RepoDB:        f.repo,
		RepoMessaging: f.msg,
		Validator:     v,
		Config:        fakeConfig{otpTTL: 5 * time.Minute},
		HMAC:          f.hmac,
		OTP:           f.otp,
		Deliveries:    f.deliveries,
		Mailer:        f.mailer,
		Clock:         clk,
		Instrument:    instrument.NewNoop(),
		Goroutine:     goroutine.NewManager(4),
	})

	return f
}

func authedCtx(consumerID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: consumerID})
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	gerr, ok := err.(*goerror.Error)
	if !ok {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	if gerr.Code() != want {
		t.Fatalf("expected code %d, got %d (%s)", want, gerr.Code(), gerr.Msg())
	}
}
