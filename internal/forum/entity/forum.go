package entity

import "time"

// Post is a farmer's discussion thread.
type Post struct {
	ID         int64
	FarmerID   int64
	FarmerName string
	Title      string
	Content    string
	LikeCount  int32
	Liked      bool
	Comments   []Comment
	CreatedAt  time.Time
}

// Comment is a reply on a post. Any authenticated account may comment.
type Comment struct {
	ID         int64
	PostID     int64
	AuthorID   int64
	AuthorName string
	Comment    string
	CreatedAt  time.Time
}
