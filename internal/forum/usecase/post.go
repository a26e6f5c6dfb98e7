package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dailyvegies/api/internal/forum/entity"
	identityentity "github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/jwt"
)

type PostCreateInput struct {
	Title   string `validate:"required,min=3,max=150"`
	Content string `validate:"required,min=3,max=5000"`
}

type PostCreateOutput struct {
	Post entity.Post
}

func (s *Usecase) PostCreate(ctx context.Context, in PostCreateInput) (*PostCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "PostCreate")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if claims.UserRole != identityentity.RoleFarmer.String() {
		return nil, goerror.NewBusiness("Only farmers can create posts", goerror.CodeForbidden)
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	post := entity.Post{
		ID:        s.uid.Generate(),
		FarmerID:  claims.UserID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repoDB.CreatePost(ctx, post); err != nil {
		slog.ErrorContext(ctx, "failed to repo create post", "farmer_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PostCreateOutput{Post: post}, nil
}

type PostListOutput struct {
	Posts []entity.Post
}

// PostList returns all posts with comments and like counts, newest first.
// Works for anonymous viewers too; Liked is only meaningful when
// authenticated.
func (s *Usecase) PostList(ctx context.Context) (*PostListOutput, error) {
	ctx, span := s.startSpan(ctx, "PostList")
	defer span.End()

	var viewerID int64
	if claims := jwt.GetAuth(ctx); claims != nil {
		viewerID = claims.UserID
	}

	posts, err := s.repoDB.GetPosts(ctx, viewerID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get posts", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PostListOutput{Posts: posts}, nil
}

type CommentAddInput struct {
	PostID  int64  `validate:"required,gt=0"`
	Comment string `validate:"required,min=1,max=1000"`
}

func (s *Usecase) CommentAdd(ctx context.Context, in CommentAddInput) error {
	ctx, span := s.startSpan(ctx, "CommentAdd")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	in.Comment = strings.TrimSpace(in.Comment)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetPostByID(ctx, in.PostID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("Post not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get post by id", "post_id", in.PostID, "error", err)
		return goerror.NewServer(err)
	}

	comment := entity.Comment{
		ID:        s.uid.Generate(),
		PostID:    in.PostID,
		AuthorID:  claims.UserID,
		Comment:   in.Comment,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repoDB.CreateComment(ctx, comment); err != nil {
		slog.ErrorContext(ctx, "failed to repo create comment", "post_id", in.PostID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type LikeToggleInput struct {
	PostID int64 `validate:"required,gt=0"`
}

type LikeToggleOutput struct {
	Liked bool
}

// LikeToggle likes a post, or removes the like when already present.
func (s *Usecase) LikeToggle(ctx context.Context, in LikeToggleInput) (*LikeToggleOutput, error) {
	ctx, span := s.startSpan(ctx, "LikeToggle")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetPostByID(ctx, in.PostID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Post not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get post by id", "post_id", in.PostID, "error", err)
		return nil, goerror.NewServer(err)
	}

	liked, err := s.repoDB.ToggleLike(ctx, in.PostID, claims.UserID, s.uid.Generate())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo toggle like", "post_id", in.PostID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LikeToggleOutput{Liked: liked}, nil
}
