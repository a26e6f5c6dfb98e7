package inbound

import (
	"github.com/dailyvegies/api/internal/forum/usecase"
	"github.com/dailyvegies/api/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for farmer discussion posts.
type HTTPEndpoint struct {
	uc uc
}

// PostList returns all posts with comments and like counts, newest first.
func (h *HTTPEndpoint) PostList(r *router.Request) (any, error) {
	resp, err := h.uc.PostList(r.Context())
	if err != nil {
		return nil, err
	}

	out := make([]PostResponse, 0, len(resp.Posts))
	for _, p := range resp.Posts {
		out = append(out, newPostResponse(p))
	}

	return out, nil
}

// PostCreate starts a new thread. Farmers only.
func (h *HTTPEndpoint) PostCreate(r *router.Request) (any, error) {
	var req PostCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PostCreate(r.Context(), usecase.PostCreateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return nil, err
	}

	return PostCreateResponse{newPostResponse(resp.Post)}, nil
}

// CommentAdd replies to a post.
func (h *HTTPEndpoint) CommentAdd(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req CommentAddRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.CommentAdd(r.Context(), usecase.CommentAddInput{
		PostID:  id,
		Comment: req.Comment,
	}); err != nil {
		return nil, err
	}

	return CommentAddResponse{}, nil
}

// LikeToggle likes or unlikes a post.
func (h *HTTPEndpoint) LikeToggle(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.LikeToggle(r.Context(), usecase.LikeToggleInput{PostID: id})
	if err != nil {
		return nil, err
	}

	return LikeToggleResponse{Liked: resp.Liked}, nil
}
