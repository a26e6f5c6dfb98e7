package inbound

import (
	"context"

	"github.com/dailyvegies/api/internal/forum/usecase"
	"github.com/dailyvegies/api/internal/pkg/router"
)

type uc interface {
	PostCreate(ctx context.Context, in usecase.PostCreateInput) (*usecase.PostCreateOutput, error)
	PostList(ctx context.Context) (*usecase.PostListOutput, error)
	CommentAdd(ctx context.Context, in usecase.CommentAddInput) error
	LikeToggle(ctx context.Context, in usecase.LikeToggleInput) (*usecase.LikeToggleOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/forum/posts", end.PostList)
	r.POST("/api/v1/forum/posts", end.PostCreate) // need farmer
	r.POST("/api/v1/forum/posts/:id/comments", end.CommentAdd)
	r.POST("/api/v1/forum/posts/:id/like", end.LikeToggle)
}
