package usecase

import (
	"context"

	"github.com/dailyvegies/api/internal/forum/entity"
	"github.com/dailyvegies/api/internal/pkg/clock"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/uid"
	"github.com/dailyvegies/api/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreatePost(ctx context.Context, in entity.Post) error
	GetPostByID(ctx context.Context, id int64) (*entity.Post, error)
	GetPosts(ctx context.Context, viewerID int64) ([]entity.Post, error)

	CreateComment(ctx context.Context, in entity.Comment) error

	// ToggleLike flips viewer's like on the post and reports whether the post
	// is liked after the call.
	ToggleLike(ctx context.Context, postID, accountID int64, likeID int64) (bool, error)
}

type Usecase struct {
	repoDB    repoDB
	validator validator.Validator
	uid       uid.NumberID
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	Validator  validator.Validator
	UID        uid.NumberID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		validator: dep.Validator,
		uid:       dep.UID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("forum.usecase").Start(ctx, name)
}
