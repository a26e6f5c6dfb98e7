package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dailyvegies/api/internal/forum/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/jwt"
	"github.com/dailyvegies/api/internal/pkg/validator"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

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

type fakeRepoDB struct {
	mu       sync.Mutex
	posts    map[int64]entity.Post
	comments []entity.Comment
	likes    map[int64]map[int64]bool
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		posts: make(map[int64]entity.Post),
		likes: make(map[int64]map[int64]bool),
	}
}

func (r *fakeRepoDB) CreatePost(_ context.Context, in entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.posts[in.ID] = in

	return nil
}

func (r *fakeRepoDB) GetPostByID(_ context.Context, id int64) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return &p, nil
}

func (r *fakeRepoDB) GetPosts(context.Context, int64) ([]entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entity.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}

	return out, nil
}

func (r *fakeRepoDB) CreateComment(_ context.Context, in entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.comments = append(r.comments, in)

	return nil
}

func (r *fakeRepoDB) ToggleLike(_ context.Context, postID, accountID, _ int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.likes[postID] == nil {
		r.likes[postID] = make(map[int64]bool)
	}

	liked := !r.likes[postID][accountID]
	r.likes[postID][accountID] = liked

	return liked, nil
}

func newTestUsecase(t *testing.T) (*Usecase, *fakeRepoDB) {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	repo := newFakeRepoDB()
	uc := New(Dependency{
		RepoDB:     repo,
		Validator:  v,
		UID:        &fakeUID{},
		Clock:      &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		Instrument: instrument.NewNoop(),
	})

	return uc, repo
}

func ctxWithRole(accountID int64, role string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: accountID, UserRole: role})
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

func TestPostCreate(t *testing.T) {
	t.Run("FarmerCreatesAPost", func(t *testing.T) {
		// Arrange
		uc, repo := newTestUsecase(t)

		// Act
		out, err := uc.PostCreate(ctxWithRole(5, "farmer"), PostCreateInput{
			Title:   "  Dealing with aphids  ",
			Content: "Neem oil twice a week worked for my chili plants.",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Post.Title != "Dealing with aphids" {
			t.Fatalf("expected trimmed title, got %q", out.Post.Title)
		}
		if out.Post.FarmerID != 5 {
			t.Fatalf("expected farmer 5, got %d", out.Post.FarmerID)
		}
		if len(repo.posts) != 1 {
			t.Fatalf("expected 1 stored post, got %d", len(repo.posts))
		}
	})

	t.Run("ConsumerIsForbidden", func(t *testing.T) {
		// Arrange
		uc, repo := newTestUsecase(t)

		// Act
		_, err := uc.PostCreate(ctxWithRole(7, "consumer"), PostCreateInput{
			Title:   "Dealing with aphids",
			Content: "Neem oil twice a week worked for my chili plants.",
		})

		// Assert
		assertCode(t, err, goerror.CodeForbidden)
		if len(repo.posts) != 0 {
			t.Fatalf("expected no stored post, got %d", len(repo.posts))
		}
	})

	t.Run("WithoutAuthentication", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)

		// Act
		_, err := uc.PostCreate(context.Background(), PostCreateInput{
			Title:   "Dealing with aphids",
			Content: "Neem oil twice a week worked for my chili plants.",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})
}

func TestCommentAdd(t *testing.T) {
	t.Run("AnyAuthenticatedRoleMayComment", func(t *testing.T) {
		// Arrange
		uc, repo := newTestUsecase(t)
		repo.posts[1] = entity.Post{ID: 1, FarmerID: 5, Title: "Dealing with aphids"}

		// Act
		err := uc.CommentAdd(ctxWithRole(7, "consumer"), CommentAddInput{
			PostID:  1,
			Comment: "Thanks, this helped.",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(repo.comments) != 1 {
			t.Fatalf("expected 1 stored comment, got %d", len(repo.comments))
		}
		if repo.comments[0].AuthorID != 7 {
			t.Fatalf("expected author 7, got %d", repo.comments[0].AuthorID)
		}
	})

	t.Run("UnknownPost", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)

		// Act
		err := uc.CommentAdd(ctxWithRole(7, "consumer"), CommentAddInput{
			PostID:  404,
			Comment: "Thanks, this helped.",
		})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})
}

func TestLikeToggle(t *testing.T) {
	t.Run("TogglesOnAndOff", func(t *testing.T) {
		// Arrange
		uc, repo := newTestUsecase(t)
		repo.posts[1] = entity.Post{ID: 1, FarmerID: 5, Title: "Dealing with aphids"}
		ctx := ctxWithRole(7, "consumer")

		// Act
		first, err := uc.LikeToggle(ctx, LikeToggleInput{PostID: 1})
		if err != nil {
			t.Fatalf("first toggle: %v", err)
		}
		second, err := uc.LikeToggle(ctx, LikeToggleInput{PostID: 1})
		if err != nil {
			t.Fatalf("second toggle: %v", err)
		}

		// Assert
		if !first.Liked {
			t.Fatalf("expected the first toggle to like")
		}
		if second.Liked {
			t.Fatalf("expected the second toggle to unlike")
		}
	})

	t.Run("UnknownPost", func(t *testing.T) {
		// Arrange
		uc, _ := newTestUsecase(t)

		// Act
		_, err := uc.LikeToggle(ctxWithRole(7, "consumer"), LikeToggleInput{PostID: 404})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})
}
