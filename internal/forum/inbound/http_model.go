package inbound

import (
	"net/http"
	"time"

	"github.com/dailyvegies/api/internal/forum/entity"
)

type PostCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CommentResponse struct {
	ID         int64     `json:"id,string"`
	AuthorID   int64     `json:"author_id,string"`
	AuthorName string    `json:"author_name"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

type PostResponse struct {
	ID         int64             `json:"id,string"`
	FarmerID   int64             `json:"farmer_id,string"`
	FarmerName string            `json:"farmer_name,omitempty"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	LikeCount  int32             `json:"like_count"`
	Liked      bool              `json:"liked"`
	Comments   []CommentResponse `json:"comments"`
	CreatedAt  time.Time         `json:"created_at"`
}

func newPostResponse(p entity.Post) PostResponse {
	comments := make([]CommentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, CommentResponse{
			ID:         c.ID,
			AuthorID:   c.AuthorID,
			AuthorName: c.AuthorName,
			Comment:    c.Comment,
			CreatedAt:  c.CreatedAt,
		})
	}

	return PostResponse{
		ID:         p.ID,
		FarmerID:   p.FarmerID,
		FarmerName: p.FarmerName,
		Title:      p.Title,
		Content:    p.Content,
		LikeCount:  p.LikeCount,
		Liked:      p.Liked,
		Comments:   comments,
		CreatedAt:  p.CreatedAt,
	}
}

type PostCreateResponse struct {
	PostResponse
}

func (PostCreateResponse) StatusCode() int {
	return http.StatusCreated
}

type CommentAddRequest struct {
	Comment string `json:"comment"`
}

type CommentAddResponse struct{}

func (CommentAddResponse) Message() string {
	return "Comment added."
}

type LikeToggleResponse struct {
	Liked bool `json:"liked"`
}
