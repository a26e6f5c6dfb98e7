package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/config"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/goroutine"
	"github.com/dailyvegies/api/internal/pkg/hash"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/jwt"
	"github.com/dailyvegies/api/internal/pkg/mail"
	"github.com/dailyvegies/api/internal/pkg/pending"
	"github.com/dailyvegies/api/internal/pkg/uid"
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
	mu       sync.Mutex
	accounts map[string]entity.Account

	createErr       error
	updateStatusErr error

	passwordUpdates map[int64]string
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		accounts:        make(map[string]entity.Account),
		passwordUpdates: make(map[int64]string),
	}
}

func (r *fakeRepoDB) seed(acc entity.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts[acc.Email] = acc
}

func (r *fakeRepoDB) GetAccountByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return &acc, nil
}

func (r *fakeRepoDB) GetAccountByMobile(_ context.Context, mobile string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, acc := range r.accounts {
		if acc.Mobile == mobile {
			return &acc, nil
		}
	}

	return nil, goerror.ErrNotFound
}

func (r *fakeRepoDB) GetAccountByID(_ context.Context, id int64) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, acc := range r.accounts {
		if acc.ID == id {
			return &acc, nil
		}
	}

	return nil, goerror.ErrNotFound
}

func (r *fakeRepoDB) GetAccountsByStatus(_ context.Context, status entity.AccountStatus) ([]entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.Account
	for _, acc := range r.accounts {
		if acc.Status == status {
			out = append(out, acc)
		}
	}

	return out, nil
}

func (r *fakeRepoDB) CreateAccount(_ context.Context, in entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.accounts[in.Email]; ok {
		return goerror.ErrConflict
	}

	r.accounts[in.Email] = in

	return nil
}

func (r *fakeRepoDB) UpdateAccountProfile(_ context.Context, in entity.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for email, acc := range r.accounts {
		if acc.ID == in.AccountID {
			acc.FullName = in.FullName
			acc.Mobile = in.Mobile
			acc.Location = in.Location
			r.accounts[email] = acc

			return nil
		}
	}

	return goerror.ErrNotFound
}

func (r *fakeRepoDB) UpdateAccountPassword(_ context.Context, id int64, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.passwordUpdates[id] = password

	return nil
}

func (r *fakeRepoDB) UpdateAccountStatus(_ context.Context, id int64, oldStatus, newStatus entity.AccountStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}

	for email, acc := range r.accounts {
		if acc.ID == id {
			if acc.Status != oldStatus {
				return goerror.ErrNotFound
			}

			acc.Status = newStatus
			r.accounts[email] = acc

			return nil
		}
	}

	return goerror.ErrNotFound
}

type fakeMessaging struct {
	mu         sync.Mutex
	registered []AccountRegisteredEvent
	approved   []AccountApprovedEvent
}

func (m *fakeMessaging) PublishAccountRegistered(_ context.Context, msg AccountRegisteredEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.registered = append(m.registered, msg)

	return nil
}

func (m *fakeMessaging) PublishAccountApproved(_ context.Context, msg AccountApprovedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.approved = append(m.approved, msg)

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

type fakeUID struct {
	mu   sync.Mutex
	next int64
}

func (u *fakeUID) Generate() int64 {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.next++

	return u.next
}

type fakeConfig struct {
	config.Config
	otpTTL time.Duration
}

func (c fakeConfig) GetMinute(string) time.Duration { return c.otpTTL }

type fixture struct {
	uc     *Usecase
	repo   *fakeRepoDB
	msg    *fakeMessaging
	mailer *fakeMailer
	otp    *fakeOTP
	clk    *fakeClock
	regs   *pending.Memory[entity.PendingRegistration]
	resets *pending.Memory[entity.PendingPasswordReset]
	hmac   hash.Hash
	bcrypt hash.Hash
}

var testJWTSecret = []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	clk := newFakeClock()
	uuid := uid.NewUUID()

	tokener, err := jwt.NewHS512(jwt.Config{
		Secret:    testJWTSecret,
		Issuer:    "dailyvegies",
		Audiences: []string{"dailyvegies"},
		TTL:       time.Hour,
		Clock:     clk,
		UUID:      uuid,
	})
	if err != nil {
		t.Fatalf("new jwt: %v", err)
	}

	continuer, err := jwt.NewContinuation(testJWTSecret, "dailyvegies", clk, uuid)
	if err != nil {
		t.Fatalf("new continuation: %v", err)
	}

	f := &fixture{
		repo:   newFakeRepoDB(),
		msg:    &fakeMessaging{},
		mailer: &fakeMailer{},
		otp:    &fakeOTP{codes: []int{123456}},
		clk:    clk,
		regs:   pending.NewMemory[entity.PendingRegistration](clk),
		resets: pending.NewMemory[entity.PendingPasswordReset](clk),
		hmac:   hash.NewHMACSHA256("test-otp-secret"),
		bcrypt: hash.NewBcrypt(4, "test-pepper"),
	}

	f.uc = New(Dependency{
		RepoDB:        f.repo,
		RepoMessaging: f.msg,
		Validator:     v,
		Config:        fakeConfig{otpTTL: 5 * time.Minute},
		Bcrypt:        f.bcrypt,
		HMAC:          f.hmac,
		OTP:           f.otp,
		Registrations: f.regs,
		Resets:        f.resets,
		Mailer:        f.mailer,
		UID:           &fakeUID{},
		Clock:         clk,
		JWT:           tokener,
		Continuer:     continuer,
		Instrument:    instrument.NewNoop(),
		Goroutine:     goroutine.NewManager(4),
	})

	return f
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
